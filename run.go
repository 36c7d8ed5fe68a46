package imputation

import (
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/unixpickle/anynet/anysgd"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// Progress is reported every this many training steps,
// starting with the first step of every epoch.
const reportInterval = 100

// A Runner owns the collaborators of a training run and
// drives the epoch/file loops for all three regimes.
//
// Conf and Creator must be set; the other fields have
// usable zero values.
type Runner struct {
	Conf    *Config
	Creator anyvec.Creator

	// Corrupt deteriorates training batches.
	Corrupt Corrupter

	// Window slices series into supervised rows.
	// If nil, SlidingWindows is used.
	Window Windower

	// Log receives the progress lines.
	// If nil, the standard logger is used.
	Log *logrus.Logger

	// Rand drives shuffling, subsampling, corruption, and
	// validation draws. If nil, the global source is used.
	Rand *rand.Rand

	// History, if non-nil, records the reported losses.
	History *History

	// Done, if non-nil, stops the run early (the model is
	// still persisted) when it is closed.
	Done <-chan struct{}
}

// Vanilla trains the plain autoencoder and persists it to
// Conf.ModelPath.
func (r *Runner) Vanilla(model Model) error {
	s, err := r.newSession()
	if err != nil {
		return err
	}
	t := NewTrainer(model, r.Conf.LearningRate)

Epochs:
	for epoch := 0; epoch < r.Conf.Epochs; epoch++ {
		if r.Conf.Shuffle {
			s.shuffle()
		}
		for i, name := range s.train.Files {
			if r.stopped() {
				break Epochs
			}
			start := time.Now()
			b, err := s.loadBatch(s.train, name)
			if err != nil {
				return err
			}
			loss := t.Step(b)

			if i%reportInterval == 0 {
				vb, err := s.validationBatch()
				if err != nil {
					return err
				}
				valLoss := t.Loss(vb)
				s.log.WithFields(logrus.Fields{
					"epoch":     epoch,
					"iteration": i,
					"trainLoss": loss,
					"valLoss":   valLoss,
					"stepTime":  time.Since(start).Round(time.Millisecond),
				}).Info("training progress")
				s.record(epoch, i, "train_loss", loss)
				s.record(epoch, i, "val_loss", valLoss)
			}
		}
	}

	s.log.Info("training complete")
	return s.save(model, nil)
}

// GAN trains the pure adversarial pair with noisy
// discriminator labels, persisting the generator and,
// when configured, the discriminator.
func (r *Runner) GAN(gen, disc Model) error {
	s, err := r.newSession()
	if err != nil {
		return err
	}
	t := NewGANTrainer(gen, disc, r.Conf.LearningRate, NoisyLabels{Rand: r.Rand})
	return r.adversarial(s, t, gen, disc)
}

// PartialGAN trains the partially adversarial pair with
// hard discriminator labels and the blended generator
// loss, persisting the generator and, when configured,
// the discriminator.
func (r *Runner) PartialGAN(gen, disc Model) error {
	s, err := r.newSession()
	if err != nil {
		return err
	}
	t := NewPartialTrainer(gen, disc, r.Conf.LearningRate, r.Conf.LossWeight)
	return r.adversarial(s, t, gen, disc)
}

// An adversarialStepper is the part of a GAN-style
// trainer the run loop needs.
type adversarialStepper interface {
	Step(b, real *Batch) (genLoss, discLoss float64)
	Report(b, real *Batch) GANReport
	ReconLoss(b *Batch) float64
}

func (r *Runner) adversarial(s *session, t adversarialStepper, gen, disc Model) error {
	if s.train.Len() < 2 {
		return errors.New("adversarial training: need at least two training series")
	}

Epochs:
	for epoch := 0; epoch < r.Conf.Epochs; epoch++ {
		if r.Conf.Shuffle {
			s.shuffle()
		}
		for i, name := range s.train.Files {
			if r.stopped() {
				break Epochs
			}
			start := time.Now()
			b, err := s.loadBatch(s.train, name)
			if err != nil {
				return err
			}
			real, err := s.realBatch(i)
			if err != nil {
				return err
			}
			genLoss, discLoss := t.Step(b, real)

			if i%reportInterval == 0 {
				rep := t.Report(b, real)
				vb, err := s.validationBatch()
				if err != nil {
					return err
				}
				valLoss := t.ReconLoss(vb)
				s.log.WithFields(logrus.Fields{
					"epoch":             epoch,
					"iteration":         i,
					"generatorLoss":     genLoss,
					"discriminatorLoss": discLoss,
					"realAccuracy":      rep.RealAccuracy,
					"fakeAccuracy":      rep.FakeAccuracy,
					"trainLoss":         rep.ReconLoss,
					"valLoss":           valLoss,
					"stepTime":          time.Since(start).Round(time.Millisecond),
				}).Info("training progress")
				s.record(epoch, i, "generator_loss", genLoss)
				s.record(epoch, i, "discriminator_loss", discLoss)
				s.record(epoch, i, "train_loss", rep.ReconLoss)
				s.record(epoch, i, "val_loss", valLoss)
			}
		}
	}

	s.log.Info("training complete")
	if r.Conf.SaveDiscriminator {
		return s.save(gen, disc)
	}
	return s.save(gen, nil)
}

func (r *Runner) stopped() bool {
	if r.Done == nil {
		return false
	}
	select {
	case <-r.Done:
		return true
	default:
		return false
	}
}

// A session holds the per-run state derived from a
// Runner: the open data sets, the batch preparer, and the
// resolved logger.
type session struct {
	r     *Runner
	prep  *Preparer
	train *DataSet
	val   *DataSet
	log   *logrus.Logger
}

func (r *Runner) newSession() (*session, error) {
	if err := r.Conf.Validate(); err != nil {
		return nil, essentials.AddCtx("training run", err)
	}
	train, err := OpenDataSet(r.Conf.TrainDir)
	if err != nil {
		return nil, err
	}
	val, err := OpenDataSet(r.Conf.ValDir)
	if err != nil {
		return nil, err
	}
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &session{
		r: r,
		prep: &Preparer{
			Creator: r.Creator,
			Conf:    r.Conf,
			Window:  r.Window,
			Corrupt: r.Corrupt,
			Rand:    r.Rand,
		},
		train: train,
		val:   val,
		log:   log,
	}, nil
}

func (s *session) shuffle() {
	anysgd.Shuffle(s.train)
}

func (s *session) loadBatch(d *DataSet, name string) (*Batch, error) {
	series, err := d.Load(name)
	if err != nil {
		return nil, err
	}
	b, err := s.prep.Prepare(series)
	if err != nil {
		return nil, essentials.AddCtx(name, err)
	}
	return b, nil
}

// realBatch samples a different training file than the
// one at index i and prepares it without corruption.
func (s *session) realBatch(i int) (*Batch, error) {
	name := s.train.SampleOther(s.r.Rand, i)
	series, err := s.train.Load(name)
	if err != nil {
		return nil, err
	}
	b, err := s.prep.PrepareReal(series)
	if err != nil {
		return nil, essentials.AddCtx(name, err)
	}
	return b, nil
}

func (s *session) validationBatch() (*Batch, error) {
	return s.loadBatch(s.val, s.val.Sample(s.r.Rand))
}

func (s *session) record(epoch, iteration int, metric string, value float64) {
	if s.r.History == nil {
		return
	}
	err := s.r.History.Record(s.r.Conf.ModelName, epoch, iteration, metric, value)
	if err != nil {
		s.log.WithError(err).Warn("history record failed")
	}
}

// save persists the trained model (or generator) and,
// when non-nil, the discriminator.
func (s *session) save(model, disc Model) error {
	path := s.r.Conf.ModelPath()
	if err := SaveModel(path, model); err != nil {
		return err
	}
	s.log.WithField("path", path).Info("model saved")
	if disc != nil {
		path = s.r.Conf.DiscriminatorPath()
		if err := SaveModel(path, disc); err != nil {
			return err
		}
		s.log.WithField("path", path).Info("discriminator saved")
	}
	return nil
}
