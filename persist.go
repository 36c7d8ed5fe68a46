package imputation

import (
	"os"
	"path/filepath"

	"github.com/unixpickle/anynet"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

// A Model is a trainable network: it can be applied to a
// packed batch, exposes its learnable parameters, and can
// be persisted.
//
// anynet.Net satisfies Model.
type Model interface {
	anynet.Layer
	anynet.Parameterizer
	serializer.Serializer
}

// SaveModel persists a model to a file, creating the
// destination directory if needed.
func SaveModel(path string, m Model) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return essentials.AddCtx("save model", err)
	}
	if err := serializer.SaveAny(path, m); err != nil {
		return essentials.AddCtx("save model", err)
	}
	return nil
}

// LoadModel reads back a model persisted by SaveModel.
func LoadModel(path string) (Model, error) {
	var net anynet.Net
	if err := serializer.LoadAny(path, &net); err != nil {
		return nil, essentials.AddCtx("load model", err)
	}
	return net, nil
}
