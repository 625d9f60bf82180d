// Package pitch provides a block-based PSOLA pitch and formant shifter.
//
// Included processors:
//   - PSOLAShifter: fixed-block engine running period estimation, epoch grid
//     construction and overlap-add resynthesis per block.
//   - StreamShifter: host-facing wrapper that accepts arbitrary buffer sizes
//     at one block of latency and maps normalized controls to ratios.
//   - PitchProcessor: shared interface for one-shot buffer processing.
package pitch
