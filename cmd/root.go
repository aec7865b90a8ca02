/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/blockcoupled/field"
	"github.com/notargets/blockcoupled/utils"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "blockcoupled",
	Short: "Block coupled tensor kernels and smoothers",
	Long: `Small dense tensor kernels (determinant, inverse, contractions) and
block coupled Gauss-Seidel and Jacobi smoothers for lower-diagonal-upper
matrices with scalar, diagonal or full coefficients.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.blockcoupled.yaml)")
	rootCmd.PersistentFlags().String("logLevel", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("jsonLog", false, "write logs as JSON")
	rootCmd.PersistentFlags().IntP("parallelDegree", "p", 0, "goroutines for per cell work, 0 uses one per CPU")
	for _, name := range []string{"logLevel", "jsonLog", "parallelDegree"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".blockcoupled")
	}
	viper.SetEnvPrefix("BLOCKCOUPLED")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() (*utils.Logger, error) {
	level, err := utils.ParseLevel(viper.GetString("logLevel"))
	if err != nil {
		return nil, err
	}
	if viper.GetBool("jsonLog") {
		return utils.NewJSONLogger(level), nil
	}
	return utils.NewTextLogger(level), nil
}

func newRunner() *field.Runner {
	return field.NewRunner(viper.GetInt("parallelDegree"))
}
