package chunker

import (
	"errors"
	"testing"
)

func TestDefaultChunkConfig(t *testing.T) {
	config := DefaultChunkConfig()

	if config.Capacity.Desired() != 512 {
		t.Errorf("expected desired capacity 512, got %d", config.Capacity.Desired())
	}
	if config.Capacity.Max() != 512 {
		t.Errorf("expected max capacity 512, got %d", config.Capacity.Max())
	}
	if config.Overlap != 0 {
		t.Errorf("expected Overlap=0, got %d", config.Overlap)
	}
	if !config.Trim {
		t.Error("expected Trim=true")
	}
	if _, ok := config.Sizer.(Characters); !ok {
		t.Errorf("expected Characters sizer, got %T", config.Sizer)
	}
}

func TestChunkConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ChunkConfig
		wantErr error
	}{
		{
			name:    "valid default",
			config:  DefaultChunkConfig(),
			wantErr: nil,
		},
		{
			name: "valid with overlap",
			config: ChunkConfig{
				Capacity: NewCapacity(100),
				Overlap:  10,
				Sizer:    Characters{},
			},
			wantErr: nil,
		},
		{
			name: "zero capacity is valid",
			config: ChunkConfig{
				Capacity: NewCapacity(0),
				Sizer:    Characters{},
			},
			wantErr: nil,
		},
		{
			name: "negative capacity",
			config: ChunkConfig{
				Capacity: NewCapacity(-1),
				Sizer:    Characters{},
			},
			wantErr: ErrInvalidCapacity,
		},
		{
			name: "negative overlap",
			config: ChunkConfig{
				Capacity: NewCapacity(100),
				Overlap:  -1,
				Sizer:    Characters{},
			},
			wantErr: ErrInvalidOverlap,
		},
		{
			name: "overlap equals desired",
			config: ChunkConfig{
				Capacity: NewCapacity(100),
				Overlap:  100,
				Sizer:    Characters{},
			},
			wantErr: ErrOverlapTooLarge,
		},
		{
			name: "overlap exceeds desired",
			config: ChunkConfig{
				Capacity: NewCapacity(100),
				Overlap:  150,
				Sizer:    Characters{},
			},
			wantErr: ErrOverlapTooLarge,
		},
		{
			name: "overlap checked against desired not max",
			config: ChunkConfig{
				Capacity: mustRange(5, 15),
				Overlap:  10,
				Sizer:    Characters{},
			},
			wantErr: ErrOverlapTooLarge,
		},
		{
			name: "nil sizer",
			config: ChunkConfig{
				Capacity: NewCapacity(100),
			},
			wantErr: ErrNilSizer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewTextChunker_InvalidConfig(t *testing.T) {
	config := DefaultChunkConfig()
	config.Overlap = 512

	_, err := NewTextChunker(config)
	if !errors.Is(err, ErrOverlapTooLarge) {
		t.Fatalf("expected ErrOverlapTooLarge, got %v", err)
	}
}
