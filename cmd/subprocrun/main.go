package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gospawn/subprocrun"
	"github.com/gospawn/subprocrun/internal/abspath"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := buildRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runFlags struct {
	workingDirectory string
	mergeStderr      bool
	verbose          bool
	timeout          time.Duration
	configPath       string
	command          string
}

func buildRoot() *cobra.Command {
	flags := &runFlags{}

	root := &cobra.Command{
		Use:   "subprocrun [-- <program> [args...]]",
		Short: "Launch a child process and report its captured result",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			argv, err := resolveArgv(flags, args)
			if err != nil {
				return err
			}
			return runOnce(flags, argv)
		},
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a config file overlaying these flags (env prefix SUBPROCRUN_)")
	root.Flags().StringVar(&flags.workingDirectory, "wd", "", "working directory for the child (default: inherit)")
	root.Flags().BoolVar(&flags.mergeStderr, "merge-stderr", false, "merge the child's stderr into stdout")
	root.Flags().BoolVar(&flags.verbose, "verbose", false, "log the resolved argv before launching")
	root.Flags().DurationVar(&flags.timeout, "timeout", 0, "if >0, send SIGTERM to the child after this long")
	root.Flags().StringVar(&flags.command, "command", "", "a single shell-like command string, quote-aware split into argv, as an alternative to positional args")

	root.AddCommand(checkCommand())
	return root
}

// resolveArgv picks the child's argv: --command, quote-aware split via
// ParseCommandArgs, takes precedence over positional args when set.
func resolveArgv(flags *runFlags, positional []string) ([]string, error) {
	if flags.command != "" {
		return subprocrun.ParseCommandArgs(flags.command), nil
	}
	if len(positional) == 0 {
		return nil, fmt.Errorf("subprocrun: either --command or a positional program and args are required")
	}
	return positional, nil
}

func checkCommand() *cobra.Command {
	var env map[string]string
	cmd := &cobra.Command{
		Use:   "check -- <program> [args...]",
		Short: "Run a program and fail unless it exits zero, printing stdout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := subprocrun.CheckNonZeroExit(args, env)
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}
	return cmd
}

func loadConfigOverlay(flags *runFlags) error {
	v := viper.New()
	v.SetEnvPrefix("SUBPROCRUN")
	v.AutomaticEnv()

	if flags.configPath != "" {
		v.SetConfigFile(flags.configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", flags.configPath, err)
		}
	}

	if wd := v.GetString("working_directory"); wd != "" {
		flags.workingDirectory = wd
	}
	if v.IsSet("merge_stderr") {
		flags.mergeStderr = v.GetBool("merge_stderr")
	}
	if v.IsSet("verbose") {
		flags.verbose = v.GetBool("verbose")
	}
	return nil
}

func resolveWorkingDirectory(path string) (abspath.AbsolutePath, error) {
	if path == "" {
		return abspath.AbsolutePath{}, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return abspath.AbsolutePath{}, err
	}
	wd, err := abspath.New(cwd)
	if err != nil {
		return abspath.AbsolutePath{}, err
	}
	return abspath.FromWorkingDirectory(wd, path)
}

func runOnce(flags *runFlags, argv []string) error {
	if err := loadConfigOverlay(flags); err != nil {
		return err
	}

	cfg := subprocrun.Config{
		Argv:                 argv,
		Redirection:          subprocrun.Collect{MergeStderr: flags.mergeStderr},
		StartNewProcessGroup: true,
		Verbose:              flags.verbose,
	}

	if flags.workingDirectory != "" {
		wd, err := resolveWorkingDirectory(flags.workingDirectory)
		if err != nil {
			return err
		}
		cfg.WorkingDirectory = &wd
	}

	handle := subprocrun.New(cfg)

	stdin, err := handle.Launch()
	if err != nil {
		return err
	}
	_ = stdin.Close()

	if flags.timeout > 0 {
		go func() {
			time.Sleep(flags.timeout)
			handle.Signal(subprocrun.SIGTERM)
		}()
	}

	result, err := handle.Wait()
	if err != nil {
		return err
	}

	fmt.Println(strings.TrimRight(result.Description(), "\n"))
	if !result.ExitStatus.Success() {
		os.Exit(1)
	}
	return nil
}
