package generate

import (
	"strings"

	"github.com/lithammer/dedent"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kelda/licensegen/pkg/config"
	"github.com/kelda/licensegen/pkg/errors"
	"github.com/kelda/licensegen/pkg/license"
	"github.com/kelda/licensegen/pkg/version"
)

type options struct {
	privateKeyPath string
	outputPath     string
	configPath     string
	verbose        bool
}

// New returns the root command. Failures are returned from Execute rather
// than exiting, so main decides the exit code.
func New() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "gen-license <email> <domain> <expires>",
		Short: "Generate a signed license file",
		Long: dedent.Dedent(`
			Generate a signed license file.

			Parameters:
			  email   - Customer email address
			  domain  - Domain for license (e.g., mail.example.com)
			  expires - Expiry date (YYYY-MM-DD), must be in the future

			The license is signed with the private key at --privkey, written to
			--out, and printed to stdout.`),
		Example: "  gen-license admin@example.com mail.example.com 2099-12-31\n" +
			"  gen-license --privkey ~/keys/license.pem john@mydomain.com mydomain.com 2099-01-15\n" +
			"  gen-license -- -support@example.com example.com 2099-06-30",
		Version: version.String(),

		// main prints the error, so we silence cobra's output to avoid double
		// printing.
		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}

			err := opts.run(cmd, args)
			if license.KindOf(err) == license.KindUsage {
				printUsage(cmd)
			}
			return err
		},
	}

	// Arguments that look like unknown flags, such as an email starting with
	// a dash, are usage errors. They can be passed after "--".
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		printUsage(cmd)
		return &license.Error{Kind: license.KindUsage, Err: err}
	})

	cmd.Flags().StringVar(&opts.privateKeyPath, "privkey", "",
		"Path to the PEM private key (default \""+config.DefaultPrivateKeyPath+"\")")
	cmd.Flags().StringVar(&opts.outputPath, "out", "",
		"Output path for the license (default \""+config.DefaultOutputPath+"\")")
	cmd.Flags().StringVar(&opts.configPath, "config", "",
		"Path to the YAML config file (default \""+config.DefaultConfigPath+"\")")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

// printUsage writes the description, parameters and examples to stderr.
// Stdout is reserved for the license itself.
func printUsage(cmd *cobra.Command) {
	cmd.PrintErrln(strings.TrimSpace(cmd.Long))
	cmd.PrintErrln()
	cmd.PrintErrln(cmd.UsageString())
}

func (opts options) run(cmd *cobra.Command, args []string) error {
	// Bad arguments are reported before anything is read from disk.
	if _, err := license.NewValidator(nil).Validate(args); err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return errors.WithContext("load config", err)
	}

	cfg, err = cfg.WithOverrides(opts.privateKeyPath, opts.outputPath)
	if err != nil {
		return errors.WithContext("load config", err)
	}

	issuer := license.Issuer{
		PrivateKeyPath: cfg.PrivateKeyPath,
		OutputPath:     cfg.OutputPath,
		Stdout:         cmd.OutOrStdout(),
	}
	signed, err := issuer.Issue(args)
	if err != nil {
		return err
	}

	log.WithField("path", cfg.OutputPath).Info("Next step 1: copy the license file to the licensed installation")
	log.Info("Next step 2: redeploy or restart the installation so that it loads the license")
	log.WithField("domain", signed.Domain).Info("Next step 3: access the installation at its licensed domain")
	return nil
}
