// Copyright (c) 2019, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package neuron

import (
	"strings"

	"github.com/goki/ki/kit"
	"github.com/iancoleman/strcase"

	"github.com/emer/spikemap/errs"
	"github.com/emer/spikemap/log"
)

// Param is a per-atom model parameter.  Parameters are fixed during a run.
type Param int32

//go:generate stringer -type=Param

var KiT_Param = kit.Enums.AddEnum(ParamN, false, nil)

func (ev Param) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Param) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// TauM is the membrane time constant in ms.
	TauM Param = iota

	// Cm is the membrane capacitance in nF.
	Cm

	// VRest is the resting membrane potential in mV.
	VRest

	// VReset is the post-spike reset potential in mV.
	VReset

	// VThresh is the spike threshold in mV.
	VThresh

	// TauRefrac is the refractory period in ms.
	TauRefrac

	// IOffset is a constant injected current in nA.
	IOffset

	// ERevE is the excitatory reversal potential in mV.
	ERevE

	// ERevI is the inhibitory reversal potential in mV.
	ERevI

	// TauSynE is the excitatory synaptic time constant in ms.
	TauSynE

	// TauSynI is the inhibitory synaptic time constant in ms.
	TauSynI

	ParamN
)

// StateVar is a per-atom state variable, updated on the core during a run
// and read back afterwards.
type StateVar int32

//go:generate stringer -type=StateVar

var KiT_StateVar = kit.Enums.AddEnum(StateVarN, false, nil)

func (ev StateVar) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *StateVar) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

const (
	// V is the membrane potential in mV.
	V StateVar = iota

	// IsynExc is the excitatory synaptic input.
	IsynExc

	// IsynInh is the inhibitory synaptic input.
	IsynInh

	// CountRefrac is the remaining refractory countdown in timesteps.
	CountRefrac

	StateVarN
)

// SnakeName returns the external name of the parameter, e.g. "tau_m".
func (p Param) SnakeName() string {
	return strcase.ToSnake(p.String())
}

// SnakeName returns the external name of the state variable, e.g. "isyn_exc".
func (sv StateVar) SnakeName() string {
	return strcase.ToSnake(sv.String())
}

// ParamByName resolves an external name such as "tau_m" or "TauM" to a Param.
func ParamByName(name string) (Param, error) {
	var p Param
	if err := p.FromString(strcase.ToCamel(name)); err != nil || p == ParamN {
		err = errs.New(errs.Lookup, "parameter name: %v not valid", name)
		log.Errorf("%v", err)
		return ParamN, err
	}
	return p, nil
}

// StateVarByName resolves an external name such as "v", "v_init" or
// "isyn_exc" to a StateVar.
func StateVarByName(name string) (StateVar, error) {
	var sv StateVar
	nm := strings.TrimSuffix(name, "_init")
	if err := sv.FromString(strcase.ToCamel(nm)); err != nil || sv == StateVarN {
		err = errs.New(errs.Lookup, "state variable name: %v not valid", name)
		log.Errorf("%v", err)
		return StateVarN, err
	}
	return sv, nil
}
