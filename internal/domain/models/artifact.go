package models

import "github.com/ethereum/go-ethereum/accounts/abi"

// Artifact is a compiled contract interface
type Artifact struct {
	Name     string
	Path     string
	ABI      abi.ABI
	Bytecode []byte
}

// ConstructorInputs returns the constructor parameters, empty when the
// contract declares no constructor
func (a *Artifact) ConstructorInputs() abi.Arguments {
	return a.ABI.Constructor.Inputs
}
