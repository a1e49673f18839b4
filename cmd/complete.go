package cmd

import (
	"flag"

	"github.com/etnz/accounts/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors are the completions of flag values, by flag name. Other flags take any value.
var flagPredictors = map[string]complete.Predictor{
	"store":     predict.Files("*.mgr"),
	"log-level": predict.Set{"debug", "info", "warn", "error"},
	"c":         predict.Set{"USD", "EUR", "GBP", "JPY", "CHF", "CAD"},
	"o":         predict.Files("*.json"),
	"d":         predict.Set{"-1d", "-1w", "-1m", "-1y"},
	"s":         predict.Set{"-1w", "-1m", "-1y"},
}

// predictor returns the completion of the values of the flag f.
func predictor(f *flag.Flag) complete.Predictor {
	if p, ok := flagPredictors[f.Name]; ok {
		return p
	}
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	return predict.Something
}

// Completion returns the shell completion of the application, for the global flags in fs and commands.
func Completion(fs *flag.FlagSet, commands []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	fs.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictor(f) })

	for _, c := range commands {
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		cf := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(cf)
		cf.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictor(f) })
		root.Sub[c.Name()] = sub
	}
	if topic, ok := root.Sub["topic"]; ok {
		if topics, err := docs.GetAllTopics(); err == nil {
			topic.Args = predict.Set(topics)
		}
	}
	return root
}
