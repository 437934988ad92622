package flag

import (
	"fmt"

	"github.com/elC0mpa/azure-storage-doctor/config"
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Run option keys. They share the viper namespace with config keys.
const (
	KeyFresh   = "fresh"
	KeyChart   = "chart"
	KeyVerbose = "verbose"
	KeyResults = "results"
)

func NewService(v *viper.Viper) *service {
	return &service{v: v}
}

// RegisterFlags defines every run option on fs. Register them once, on
// the persistent flag set of the root command, since a viper key can
// only be bound to a single flag.
func (s *service) RegisterFlags(fs *pflag.FlagSet) error {
	fs.String(config.KeySubscription, "", "Subscription used for entries without one")
	fs.String(config.KeyRegion, config.Default().DefaultRegion, "Region used for resources that report none")
	fs.String(KeyResults, "", "Progress file (defaults to the report's results file)")
	fs.Bool(KeyFresh, false, "Discard previously recorded results and price everything again")
	fs.Bool(KeyChart, false, "Draw a bar chart of the scenario totals")
	fs.BoolP(KeyVerbose, "v", false, "Log debug details to stderr")

	for _, name := range []string{config.KeySubscription, config.KeyRegion, KeyResults, KeyFresh, KeyChart, KeyVerbose} {
		if err := s.v.BindPFlag(name, fs.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// GetParsedFlags expects the input resource list as the only argument
func (s *service) GetParsedFlags(report model.ReportKind, args []string) (model.Flags, error) {
	if len(args) != 1 {
		return model.Flags{}, fmt.Errorf("%w: expected exactly one resource list file, got %d arguments", model.ErrInvalidInput, len(args))
	}

	return model.Flags{
		Report:       report,
		InputFile:    args[0],
		ResultsFile:  s.v.GetString(KeyResults),
		Subscription: s.v.GetString(config.KeySubscription),
		Fresh:        s.v.GetBool(KeyFresh),
		Chart:        s.v.GetBool(KeyChart),
		Verbose:      s.v.GetBool(KeyVerbose),
	}, nil
}
