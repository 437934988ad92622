package flag

import (
	"github.com/elC0mpa/azure-storage-doctor/model"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type service struct {
	v *viper.Viper
}

// FlagService defines the command line options of a comparison run and
// resolves them, together with their config file and environment
// counterparts, into model.Flags
type FlagService interface {
	RegisterFlags(fs *pflag.FlagSet) error
	GetParsedFlags(report model.ReportKind, args []string) (model.Flags, error)
}
