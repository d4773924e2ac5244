package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// envPrefix prefixes every environment variable read by [bindEnvVars].
var envPrefix = strings.ToUpper(cmdName) + "_"

// Flags that are never read from the environment.
var envSkipFlags = map[string]bool{
	"help":    true,
	"version": true,
}

// bindEnvVars sets each unset flag of cmd from KONTROL_<FLAG_NAME>, with the
// flag name upper-cased and dashes replaced by underscores. For example,
// "--log-level" is read from $KONTROL_LOG_LEVEL.
//
// Arguments take precedence over environment variables, which take precedence
// over default values. The variable name is appended to each flag's usage.
func bindEnvVars(cmd *cobra.Command) {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()} {
		fs.VisitAll(bindFlagToEnv)
	}
}

func bindFlagToEnv(flag *pflag.Flag) {
	if envSkipFlags[flag.Name] {
		return
	}

	envName := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, envName) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envName)
	}

	if flag.Changed {
		return
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return
	}

	err := flag.Value.Set(envValue)
	if err != nil {
		// Keep the default value.
		slog.Warn("ignore invalid environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.String("value", envValue),
			slog.Any("error", err),
		)
	}
}

// flagToEnvName converts a flag name to its environment variable name.
func flagToEnvName(flagName string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}
