package main

import (
	"flag"
	"math/rand"

	"github.com/sirupsen/logrus"
	"github.com/unixpickle/anynet"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvec32"
	"github.com/unixpickle/rip"

	imputation "github.com/AJaafer/GAN-RNN-Timeseries-imputation"
)

func main() {
	var configPath string
	var mode string
	var hidden int
	var seed int64
	var missing float64
	flag.StringVar(&configPath, "config", "config.yaml", "training configuration file")
	flag.StringVar(&mode, "mode", "vanilla", "training regime: vanilla, gan, or partial")
	flag.IntVar(&hidden, "hidden", 128, "hidden layer size")
	flag.Int64Var(&seed, "seed", 0, "random seed (0 uses the global source)")
	flag.Float64Var(&missing, "missing", 0.2, "probability that an entry is marked missing")
	flag.Parse()

	log := logrus.New()

	conf, err := imputation.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	var hist *imputation.History
	if conf.HistoryPath != "" {
		if hist, err = imputation.OpenHistory(conf.HistoryPath); err != nil {
			log.Fatal(err)
		}
	}

	creator := anyvec32.CurrentCreator()
	runner := &imputation.Runner{
		Conf:    conf,
		Creator: creator,
		Corrupt: imputation.UniformDropout(missing),
		Log:     log,
		Rand:    rng,
		History: hist,
		Done:    rip.NewRIP().Chan(),
	}

	gen := anynet.Net{
		anynet.NewFC(creator, conf.WindowLen, hidden),
		anynet.Tanh,
		anynet.NewFC(creator, hidden, conf.WindowLen),
	}

	log.Info("press ctrl+c once to stop early")
	switch mode {
	case "vanilla":
		err = runner.Vanilla(gen)
	case "gan":
		err = runner.GAN(gen, newDiscriminator(creator, conf.WindowLen, hidden))
	case "partial":
		err = runner.PartialGAN(gen, newDiscriminator(creator, conf.WindowLen, hidden))
	default:
		log.Fatalf("unknown mode: %s", mode)
	}

	if hist != nil {
		if closeErr := hist.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}

func newDiscriminator(c anyvec.Creator, windowLen, hidden int) anynet.Net {
	return anynet.Net{
		anynet.NewFC(c, windowLen, hidden),
		anynet.Tanh,
		anynet.NewFC(c, hidden, 1),
	}
}
