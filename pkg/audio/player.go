package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/wakemind/wakemind/pkg/models"
)

// Global audio context singleton
var (
	globalAudioCtx     *oto.Context
	globalAudioCtxOnce sync.Once
	audioCtxReady      bool
	audioCtxFormat     Format
)

// initAudioContext initializes the global audio context once
func initAudioContext(format *Format) {
	globalAudioCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			log.Printf("Failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready
		<-readyChan

		globalAudioCtx = ctx
		audioCtxReady = true
		audioCtxFormat = *format
		log.Println("Audio context initialized successfully")
	})

	if audioCtxReady && (format.SampleRate != audioCtxFormat.SampleRate || format.Channels != audioCtxFormat.Channels) {
		log.Printf("Audio format %dHz/%dch differs from context %dHz/%dch, playback pitch may be off",
			format.SampleRate, format.Channels, audioCtxFormat.SampleRate, audioCtxFormat.Channels)
	}
}

// Player owns the single active alarm sound. Play replaces whatever is
// currently sounding and Stop with nothing playing is a no-op, so at most
// one sound is ever live.
type Player struct {
	mu      sync.Mutex
	current *playback
}

// NewPlayer creates the application's sound player.
func NewPlayer() *Player {
	return &Player{}
}

// Play starts looping the sound described by settings, stopping any sound
// already playing first. Built-in profiles are synthesized; custom settings
// carry a WAV payload uploaded by the user.
func (p *Player) Play(settings models.SoundSettings) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.current.stop()
		p.current = nil
	}

	var (
		format *Format
		pcm    []byte
	)
	if settings.Type == models.SoundCustom && len(settings.Data) > 0 {
		var err error
		format, pcm, err = parseWAV(settings.Data)
		if err != nil {
			log.Printf("Failed to decode custom sound %q, falling back to classic: %v", settings.Name, err)
			format, pcm = Render(models.SoundClassic)
		}
	} else {
		format, pcm = Render(settings.Type)
	}

	initAudioContext(format)
	if !audioCtxReady || globalAudioCtx == nil {
		log.Printf("Audio context not ready")
		return
	}

	pb := &playback{stopChan: make(chan struct{})}
	p.current = pb
	go pb.playLoop(pcm)
}

// Stop halts playback. Idempotent; stopping an idle player does nothing.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		p.current.stop()
		p.current = nil
	}
}

// playback is one looping sound with cancellation support.
type playback struct {
	stopChan chan struct{}
	player   *oto.Player
	stopped  bool
	mu       sync.Mutex
}

func (pb *playback) playLoop(audioData []byte) {
	// Loop the alarm sound until stopped
	for {
		// Create a new player for each loop iteration
		pb.player = globalAudioCtx.NewPlayer(bytes.NewReader(audioData))

		// Play starts playing the sound and returns without waiting
		pb.player.Play()

		// Wait for the sound to finish playing or stop signal
		for pb.player.IsPlaying() {
			select {
			case <-pb.stopChan:
				// Stop requested, pause and cleanup then exit
				pb.player.Pause()
				pb.player.Close()
				return
			case <-time.After(10 * time.Millisecond):
				// Continue checking
			}
		}

		// Close the player before creating a new one
		if err := pb.player.Close(); err != nil {
			log.Printf("Failed to close audio player: %v", err)
		}

		// Check if stop was requested between loops
		select {
		case <-pb.stopChan:
			return
		default:
			// Continue looping
		}
	}
}

func (pb *playback) stop() {
	pb.mu.Lock()
	defer pb.mu.Unlock()

	if !pb.stopped {
		pb.stopped = true
		close(pb.stopChan)

		// Also try to pause the current player if it exists
		if pb.player != nil {
			pb.player.Pause()
		}
	}
}

// DecodeWAV validates a custom sound payload without playing it. Used at
// upload time so undecodable files are rejected before any alarm state
// changes.
func DecodeWAV(data []byte) error {
	_, _, err := parseWAV(data)
	return err
}

// parseWAV parses a WAV file and returns the format and audio data
func parseWAV(data []byte) (*Format, []byte, error) {
	reader := bytes.NewReader(data)

	// Read RIFF header
	riff := make([]byte, 4)
	if _, err := reader.Read(riff); err != nil {
		return nil, nil, err
	}
	if string(riff) != "RIFF" {
		return nil, nil, fmt.Errorf("not a RIFF file")
	}

	// Skip file size
	reader.Seek(4, io.SeekCurrent)

	// Read WAVE header
	wave := make([]byte, 4)
	if _, err := reader.Read(wave); err != nil {
		return nil, nil, err
	}
	if string(wave) != "WAVE" {
		return nil, nil, fmt.Errorf("not a WAVE file")
	}

	format := &Format{}
	var dataStart int64
	var dataSize uint32

	// Read chunks
	for {
		chunkID := make([]byte, 4)
		if _, err := reader.Read(chunkID); err != nil {
			if err == io.EOF {
				break
			}
			return nil, nil, err
		}

		var chunkSize uint32
		if err := binary.Read(reader, binary.LittleEndian, &chunkSize); err != nil {
			return nil, nil, err
		}

		chunkIDStr := string(chunkID)

		if chunkIDStr == "fmt " {
			// Read format chunk
			var audioFormat uint16
			binary.Read(reader, binary.LittleEndian, &audioFormat)

			var numChannels uint16
			binary.Read(reader, binary.LittleEndian, &numChannels)
			format.Channels = int(numChannels)

			var sampleRate uint32
			binary.Read(reader, binary.LittleEndian, &sampleRate)
			format.SampleRate = int(sampleRate)

			// Skip byte rate and block align
			reader.Seek(6, io.SeekCurrent)

			var bitsPerSample uint16
			binary.Read(reader, binary.LittleEndian, &bitsPerSample)
			format.BitDepth = int(bitsPerSample)

			// Skip any extra format bytes
			remaining := chunkSize - 16
			if remaining > 0 {
				reader.Seek(int64(remaining), io.SeekCurrent)
			}
		} else if chunkIDStr == "data" {
			// Found data chunk
			dataStart, _ = reader.Seek(0, io.SeekCurrent)
			dataSize = chunkSize
			break
		} else {
			// Skip unknown chunk
			reader.Seek(int64(chunkSize), io.SeekCurrent)
		}
	}

	if format.SampleRate == 0 || format.Channels == 0 {
		return nil, nil, fmt.Errorf("missing fmt chunk")
	}
	if dataSize == 0 {
		return nil, nil, fmt.Errorf("missing data chunk")
	}

	// The declared chunk size is untrusted input; never allocate past the
	// bytes actually present in the file.
	if avail := int64(len(data)) - dataStart; int64(dataSize) > avail {
		if avail <= 0 {
			return nil, nil, fmt.Errorf("empty data chunk")
		}
		dataSize = uint32(avail)
	}

	// Read audio data
	audioData := make([]byte, dataSize)
	reader.Seek(dataStart, io.SeekStart)
	n, _ := reader.Read(audioData)
	if n == 0 {
		return nil, nil, fmt.Errorf("empty data chunk")
	}

	return format, audioData[:n], nil
}
