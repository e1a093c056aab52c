// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package factoryvm

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/formatting"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/mr-tron/base58"
)

// StaticService defines the static API methods exposed by the factory VM.
// None of them touch the ledger.
type StaticService struct{}

// CreateStaticService returns a new StaticService
func CreateStaticService() *StaticService {
	return &StaticService{}
}

// NewStaticHandler returns the JSON-RPC handler of the static API.
func NewStaticHandler() (http.Handler, error) {
	return newServer(CreateStaticService())
}

// EncodeArgs are arguments for Encode
type EncodeArgs struct {
	Data string `json:"data"`
}

// EncodeReply is the reply from Encode
type EncodeReply struct {
	Bytes string `json:"bytes"`
}

// Encode returns the hex encoding of [args.Data]. Call inputs are passed to
// the other methods hex encoded.
func (*StaticService) Encode(_ *http.Request, args *EncodeArgs, reply *EncodeReply) error {
	bytes, err := formatting.EncodeWithChecksum(formatting.Hex, []byte(args.Data))
	if err != nil {
		return err
	}
	reply.Bytes = bytes
	return nil
}

// DecodeArgs are arguments for Decode
type DecodeArgs struct {
	Bytes string `json:"bytes"`
}

// DecodeReply is the reply from Decode
type DecodeReply struct {
	Data string `json:"data"`
}

// Decode returns the string a hex encoding holds
func (*StaticService) Decode(_ *http.Request, args *DecodeArgs, reply *DecodeReply) error {
	bytes, err := decodeHex(args.Bytes)
	if err != nil {
		return err
	}
	reply.Data = string(bytes)
	return nil
}

// CodeHashArgs are arguments for CodeHash
type CodeHashArgs struct {
	// Code is the hex encoded code
	Code string `json:"code"`
}

// CodeHashReply is the reply from CodeHash
type CodeHashReply struct {
	Hash string `json:"hash"`
}

// CodeHash returns the base58 SHA-256 of some code, as get_code_hash of a
// factory holding it would report it
func (*StaticService) CodeHash(_ *http.Request, args *CodeHashArgs, reply *CodeHashReply) error {
	code, err := decodeHex(args.Code)
	if err != nil {
		return err
	}
	hash := hashing.ComputeHash256Array(code)
	reply.Hash = base58.Encode(hash[:])
	return nil
}
