package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jackc [flags] file.jack|dir ...",
	Short: "Compile Jack classes into VM code.",
	Long: `Compile every given .jack file, and every .jack file directly inside a given
directory, into a .vm file of the same name. Each class is compiled
independently; a class that fails to compile produces no output.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().String("config", "", "YAML configuration file (default "+defaultConfigFile+" if present)")
	rootCmd.Flags().IntP("jobs", "j", 0, "number of classes compiled in parallel (default number of CPUs)")
	rootCmd.Flags().StringP("out", "o", "", "directory for .vm files (default next to each source)")
	rootCmd.Flags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.Flags().Bool("trace", false, "log every grammar rule compiled")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := configure(cmd)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	if GetFlag(cmd, "trace") {
		log.SetLevel(log.TraceLevel)
	}

	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	return compileAll(files, cfg)
}

// GetFlag reads a boolean flag that is known to exist.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		log.Fatal(err)
	}
	return r
}

func main() {
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
