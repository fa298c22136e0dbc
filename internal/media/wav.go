// Package media handles microphone capture and audio playback for the
// storefront, shelling out to whichever system audio tools are installed.
// The Gemini TTS endpoint returns raw 24 kHz PCM16 mono; the WAV helpers
// here wrap that stream so standard players accept it.
package media

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	// TTSSampleRate is the sample rate of Gemini TTS output.
	TTSSampleRate = 24000
	ttsChannels   = 1
	ttsBitDepth   = 16
)

// WrapPCMInWAV prepends a RIFF/WAVE header to raw little-endian PCM16 data.
func WrapPCMInWAV(pcm []byte, sampleRate, channels int) []byte {
	byteRate := sampleRate * channels * ttsBitDepth / 8
	blockAlign := channels * ttsBitDepth / 8

	var buf bytes.Buffer
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(&buf, binary.LittleEndian, uint16(ttsBitDepth))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)
	return buf.Bytes()
}

// WrapTTS wraps Gemini TTS output in a playable WAV container.
func WrapTTS(pcm []byte) []byte {
	return WrapPCMInWAV(pcm, TTSSampleRate, ttsChannels)
}

// ErrNotWAV is returned for data that lacks a RIFF/WAVE header.
var ErrNotWAV = errors.New("not a WAV file")

// ValidateWAV performs a cheap header check before data is shipped to the
// transcription endpoint.
func ValidateWAV(data []byte) error {
	if len(data) < 44 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return ErrNotWAV
	}
	return nil
}
