package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	appName   = "line-count"
	envPrefix = "LINECOUNT"
)

// options is the fully resolved configuration for one run, after defaults,
// config file, environment and flags have been layered by viper.
type options struct {
	Directory   string
	SortDesc    bool
	Threads     int
	KeepGoing   bool
	Include     string
	Exclude     string
	SkipHidden  bool
	Gitignore   bool
	Output      string
	Summary     bool
	File        string
	Clipboard   bool
	PDF         string
	Interactive bool
	Verbose     bool
}

// flagKeys maps flag names to their snake_case viper keys.
var flagKeys = map[string]string{
	"directory":   "directory",
	"sort-desc":   "sort_desc",
	"threads":     "threads",
	"keep-going":  "keep_going",
	"include":     "include",
	"exclude":     "exclude",
	"skip-hidden": "skip_hidden",
	"gitignore":   "gitignore",
	"output":      "output",
	"summary":     "summary",
	"file":        "file",
	"clipboard":   "clipboard",
	"pdf":         "pdf",
	"interactive": "interactive",
	"verbose":     "verbose",
}

// bindFlags binds every known flag to its viper key.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	v.SetDefault("output", formatText)
	v.SetDefault("threads", 0)
	return nil
}

// configDirs lists the directories searched for config.toml and languages.yml.
func configDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", appName))
	}
	return append(dirs, ".")
}

// initConfig reads in the config file and LINECOUNT_* environment variables.
// It returns the config file used, or "" when none was found.
func initConfig(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		for _, dir := range configDirs() {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("error reading config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// loadOptions resolves the run options from v.
func loadOptions(v *viper.Viper) options {
	return options{
		Directory:   v.GetString("directory"),
		SortDesc:    v.GetBool("sort_desc"),
		Threads:     v.GetInt("threads"),
		KeepGoing:   v.GetBool("keep_going"),
		Include:     v.GetString("include"),
		Exclude:     v.GetString("exclude"),
		SkipHidden:  v.GetBool("skip_hidden"),
		Gitignore:   v.GetBool("gitignore"),
		Output:      v.GetString("output"),
		Summary:     v.GetBool("summary"),
		File:        v.GetString("file"),
		Clipboard:   v.GetBool("clipboard"),
		PDF:         v.GetString("pdf"),
		Interactive: v.GetBool("interactive"),
		Verbose:     v.GetBool("verbose"),
	}
}

// validate rejects option combinations that cannot run.
func (o options) validate() error {
	if o.Directory == "" && !o.Interactive {
		return errors.New(`required flag(s) "directory" not set`)
	}
	if o.Threads < 0 {
		return fmt.Errorf("threads must be zero or positive, got %d", o.Threads)
	}
	switch strings.ToLower(o.Output) {
	case "", formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unsupported output format: %s. Use 'text', 'json' or 'yaml'", o.Output)
	}
	if o.PDF != "" {
		format := strings.ToLower(o.Output)
		if o.File != "" || o.Clipboard || (format != "" && format != formatText) {
			return errors.New("--pdf cannot be combined with --file, --clipboard or a non-text --output")
		}
	}
	return nil
}
