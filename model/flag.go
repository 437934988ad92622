package model

// Flags holds the resolved command line options of a comparison run
type Flags struct {
	Report       ReportKind
	InputFile    string
	ResultsFile  string
	Subscription string
	Fresh        bool
	Chart        bool
	Verbose      bool
}
