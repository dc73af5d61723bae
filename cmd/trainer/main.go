package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/exti/admitly/internal/training"
	"github.com/exti/admitly/pkg/logger"
)

// Default trainer CLI constants.
const defaultRunTimeout = 10 * time.Minute

func main() {
	var (
		catalogPath  = flag.String("catalog", "data/universities.csv", "Path to the university catalog CSV")
		artifactPath = flag.String("out", "data/admission_model.json", "Output path for the model artifact")
		corpusSize   = flag.Int("examples", training.DefaultCorpusSize, "Number of synthetic examples to generate")
		seed         = flag.Int64("seed", training.DefaultSeed, "Random seed for corpus generation")
		holdout      = flag.Float64("holdout", training.DefaultHoldoutFraction, "Fraction of the corpus held out for accuracy measurement")
		timeout      = flag.Duration("timeout", defaultRunTimeout, "Overall run timeout")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := training.NewConfig(*catalogPath, *artifactPath)
	cfg.CorpusSize = *corpusSize
	cfg.Seed = *seed
	cfg.HoldoutFraction = *holdout

	report, err := training.Run(ctx, cfg)
	if err != nil {
		os.Stderr.WriteString("training failed: " + err.Error() + "\n")
		os.Exit(1)
	}

	fmt.Printf("trained on %d examples (%d holdout), admit rate %.3f, holdout accuracy %.3f\n",
		report.TrainSize, report.HoldoutSize, report.AdmitRate, report.Accuracy)
	fmt.Printf("artifact written to %s\n", *artifactPath)
}
