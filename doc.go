// Package imputation trains sequence-to-sequence models
// that reconstruct missing values in univariate time
// series.
//
// Three training regimes are provided: a plain
// autoencoder trained on mean absolute error, a pure GAN
// in which a generator imputes corrupted windows and a
// discriminator scores them against real windows, and a
// partially adversarial hybrid whose generator loss
// blends reconstruction and adversarial terms.
//
// Models are anynet networks; gradients come from
// anydiff and each network is updated by its own
// anysgd.Adam transformer.
package imputation
