/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Seednode/partykiosk/kiosk"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind            string
	bonus           []string
	bonusChance     float64
	fps             int
	groupSize       int
	idleTimeout     time.Duration
	maxSpeed        float64
	minSpeed        float64
	port            int
	prefix          string
	profile         bool
	questions       string
	rareProbability float64
	terminal        bool
	tlsCert         string
	tlsKey          string
	verbose         bool
	version         bool
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.questions == "" {
		return errors.New("--questions must point to a file or URL")
	}
	if c.groupSize < 1 {
		return fmt.Errorf("invalid group size (must be at least 1): %d", c.groupSize)
	}
	if c.idleTimeout <= 0 {
		return fmt.Errorf("invalid idle timeout (must be positive): %s", c.idleTimeout)
	}
	if c.rareProbability < 0 || c.rareProbability > 1 {
		return fmt.Errorf("invalid rare probability (must be between 0-1 inclusive): %v", c.rareProbability)
	}
	if c.bonusChance < 0 || c.bonusChance > 1 {
		return fmt.Errorf("invalid bonus chance (must be between 0-1 inclusive): %v", c.bonusChance)
	}
	if c.fps < 1 || c.fps > 240 {
		return fmt.Errorf("invalid fps (must be between 1-240 inclusive): %d", c.fps)
	}
	if c.minSpeed <= 0 || c.maxSpeed < c.minSpeed {
		return fmt.Errorf("invalid screensaver speed range: %v-%v", c.minSpeed, c.maxSpeed)
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func (c *Config) kioskOptions() kiosk.Options {
	return kiosk.Options{
		GroupSize:       c.groupSize,
		IdleTimeout:     c.idleTimeout,
		RareProbability: c.rareProbability,
		BonusChance:     c.bonusChance,
		MinSpeed:        c.minSpeed,
		MaxSpeed:        c.maxSpeed,
		Logf: func(format string, args ...any) {
			logf(c, format, args...)
		},
	}
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PARTYKIOSK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "partykiosk",
		Short:         "A party prompt kiosk with an idle screensaver, served as a webapp or in a terminal.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			if cfg.terminal {
				return RunTerminal(cmd.Context(), cfg)
			}
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	def := kiosk.DefaultOptions()

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: PARTYKIOSK_BIND)")
	fs.StringArrayVar(&cfg.bonus, "bonus", []string{"Give a shout-out to the hosts!", "Everyone in the tent, group hug!"}, "bonus prompt text, may be repeated (env: PARTYKIOSK_BONUS)")
	fs.Float64Var(&cfg.bonusChance, "bonus-chance", def.BonusChance, "chance per round of swapping in a bonus prompt (env: PARTYKIOSK_BONUS_CHANCE)")
	fs.IntVar(&cfg.fps, "fps", kiosk.DefaultFPS, "screensaver frames per second (env: PARTYKIOSK_FPS)")
	fs.IntVarP(&cfg.groupSize, "group-size", "g", def.GroupSize, "prompts per round (env: PARTYKIOSK_GROUP_SIZE)")
	fs.DurationVar(&cfg.idleTimeout, "idle-timeout", def.IdleTimeout, "inactivity before the screensaver starts (env: PARTYKIOSK_IDLE_TIMEOUT)")
	fs.Float64Var(&cfg.maxSpeed, "max-speed", def.MaxSpeed, "maximum screensaver speed in px/s (env: PARTYKIOSK_MAX_SPEED)")
	fs.Float64Var(&cfg.minSpeed, "min-speed", def.MinSpeed, "minimum screensaver speed in px/s (env: PARTYKIOSK_MIN_SPEED)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: PARTYKIOSK_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: PARTYKIOSK_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: PARTYKIOSK_PROFILE)")
	fs.StringVarP(&cfg.questions, "questions", "q", "questions.json", "path or URL of the question list, json or yaml (env: PARTYKIOSK_QUESTIONS)")
	fs.Float64Var(&cfg.rareProbability, "rare-probability", def.RareProbability, "chance per slot of drawing a rare prompt (env: PARTYKIOSK_RARE_PROBABILITY)")
	fs.BoolVarP(&cfg.terminal, "terminal", "t", false, "run the kiosk in this terminal instead of serving it (env: PARTYKIOSK_TERMINAL)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: PARTYKIOSK_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: PARTYKIOSK_TLS_KEY)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: PARTYKIOSK_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: PARTYKIOSK_VERSION)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("partykiosk v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
