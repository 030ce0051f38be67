package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	tt "github.com/idlint/idlint/internal/types"
	"github.com/idlint/idlint/lint"
)

const defaultConfigName = ".idlint.yaml"

// initCmd: idlint init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		path := cfgFile
		if path == "" {
			path = defaultConfigName
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = defaultConfigName
	}

	config := lint.Config{
		Name: "idlint",
		Rules: map[string]tt.ConfigRule{
			"identifier-match": {
				Severity: tt.SeverityError,
				Pattern:  "^[a-z]+([A-Z][a-z0-9]*)*$",
				Options: map[string]any{
					"properties":          false,
					"classFields":         false,
					"onlyDeclarations":    false,
					"ignoreDestructuring": false,
					"ignoreNamedImports":  false,
				},
			},
		},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
