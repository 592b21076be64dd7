// Package audio is the gating and mixing side of the audio boundary.
//
// Decoding and playback belong to a Device supplied by the host. The Mixer
// decides whether a sound may play (per-channel gates and a master volume)
// and tracks live voices so that closing a gate silences them. Sounds load
// asynchronously through the asset package; Play on a sound that is not
// ready yet does nothing.
package audio
