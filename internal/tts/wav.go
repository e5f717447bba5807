package tts

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
)

// PCM format returned by the Gemini speech models.
const (
	PCMSampleRate    = 24000
	PCMChannels      = 1
	PCMBitsPerSample = 16
)

// IsWAV reports whether a is already a RIFF/WAVE container.
func (a *Audio) IsWAV() bool {
	return bytes.HasPrefix(a.Data, []byte("RIFF")) || strings.Contains(strings.ToLower(a.MIMEType), "audio/wav")
}

// WriteWAV writes a as a WAV file, wrapping raw PCM in a header.
func WriteWAV(w io.Writer, a *Audio) error {
	if a.IsWAV() {
		_, err := w.Write(a.Data)
		return err
	}

	const blockAlign = PCMChannels * PCMBitsPerSample / 8
	header := struct {
		ChunkID       [4]byte
		ChunkSize     uint32
		Format        [4]byte
		Subchunk1ID   [4]byte
		Subchunk1Size uint32
		AudioFormat   uint16
		NumChannels   uint16
		SampleRate    uint32
		ByteRate      uint32
		BlockAlign    uint16
		BitsPerSample uint16
		Subchunk2ID   [4]byte
		Subchunk2Size uint32
	}{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + len(a.Data)),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   PCMChannels,
		SampleRate:    PCMSampleRate,
		ByteRate:      PCMSampleRate * blockAlign,
		BlockAlign:    blockAlign,
		BitsPerSample: PCMBitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(len(a.Data)),
	}

	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}
	_, err := w.Write(a.Data)
	return err
}
