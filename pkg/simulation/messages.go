package simulation

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Actor protocol, built on protobuf well-known types:
//
//	*timestamppb.Timestamp  advance the swarm to that instant (Ask, replies *wrapperspb.UInt64Value)
//	*structpb.Struct        live tuning, keyed by the Tuning* constants (Tell)
const (
	TuningForceConstant = "forceConstant"
	TuningReset         = "reset"
)

// NewTick asks the swarm actor to step the simulation to now.
func NewTick(now time.Time) *timestamppb.Timestamp {
	return timestamppb.New(now)
}

// NewTuning builds a tuning message carrying a new force constant.
func NewTuning(forceConstant float64) (*structpb.Struct, error) {
	if math.IsNaN(forceConstant) || math.IsInf(forceConstant, 0) {
		return nil, fmt.Errorf("%w: force constant must be finite", ErrInvalidConfig)
	}
	return structpb.NewStruct(map[string]any{TuningForceConstant: forceConstant})
}

// NewReset asks the swarm actor to repopulate from its configuration.
func NewReset() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		TuningReset: structpb.NewBoolValue(true),
	}}
}

// frameAck is the reply to a tick.
func frameAck(frame uint64) *wrapperspb.UInt64Value {
	return wrapperspb.UInt64(frame)
}
