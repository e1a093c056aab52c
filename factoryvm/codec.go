// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"github.com/ava-labs/avalanchego/codec"
	"github.com/ava-labs/avalanchego/codec/linearcodec"
	"github.com/ava-labs/avalanchego/utils/units"
	"github.com/ava-labs/avalanchego/utils/wrappers"
)

const (
	// CodecVersion is the current default codec version
	CodecVersion = 0

	// MaxPayloadSize bounds every byte slice the codec carries: call
	// arguments, return values and the code handed to set_code.
	MaxPayloadSize = 8 * units.MiB

	// A transaction wraps its arguments with a few short fields.
	maxCodecSize = MaxPayloadSize + units.MiB
)

// Codecs do serialization and deserialization
var (
	Codec codec.Manager
)

func init() {
	c := linearcodec.NewCustomMaxLength(MaxPayloadSize)
	Codec = codec.NewManager(maxCodecSize)

	errs := wrappers.Errs{}

	errs.Add(
		c.RegisterType(&accountRecord{}),
		c.RegisterType(&Transaction{}),
		c.RegisterType(&Outcome{}),
	)

	errs.Add(
		Codec.RegisterCodec(CodecVersion, c),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}
