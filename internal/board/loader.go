package board

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/blockforge/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// boardsDoc is the {boards: [...]} document shape shared by JSON and YAML.
type boardsDoc struct {
	Boards []boardDoc `json:"boards" yaml:"boards"`
}

type boardDoc struct {
	ID     string    `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	FQBN   string    `json:"fqbn" yaml:"fqbn"`
	Upload uploadDoc `json:"upload" yaml:"upload"`
	Pins   pinsDoc   `json:"pins" yaml:"pins"`
}

type uploadDoc struct {
	Command string `json:"command" yaml:"command"`
	Tool    string `json:"tool" yaml:"tool"`
	Speed   int    `json:"speed" yaml:"speed"`
}

type pinsDoc struct {
	Digital []int    `json:"digital" yaml:"digital"`
	PWM     []int    `json:"pwm" yaml:"pwm"`
	Analog  []string `json:"analog" yaml:"analog"`
}

// hclBoardsFile decodes a native-HCL board document.
type hclBoardsFile struct {
	Boards []*hclBoard `hcl:"board,block"`
}

type hclBoard struct {
	ID     string     `hcl:"id,label"`
	Name   string     `hcl:"name,optional"`
	FQBN   string     `hcl:"fqbn,optional"`
	Upload *hclUpload `hcl:"upload,block"`
	Pins   *hclPins   `hcl:"pins,block"`
}

type hclUpload struct {
	Command string `hcl:"command,optional"`
	Tool    string `hcl:"tool,optional"`
	Speed   int    `hcl:"speed,optional"`
}

type hclPins struct {
	Digital []int    `hcl:"digital,optional"`
	PWM     []int    `hcl:"pwm,optional"`
	Analog  []string `hcl:"analog,optional"`
}

// Load reads board profiles from a JSON, YAML or HCL document and returns
// them keyed by board id.
func Load(ctx context.Context, path string) (map[string]*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board profiles %s: %w", path, err)
	}

	var doc boardsDoc
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return loadHCL(ctx, path, data)
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid YAML in board profiles %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid JSON in board profiles %s: %w", path, err)
		}
	}
	return fromDoc(ctx, path, &doc)
}

func loadHCL(ctx context.Context, path string, data []byte) (map[string]*Profile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse board profiles %s: %s", path, diags.Error())
	}
	var root hclBoardsFile
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode board profiles %s: %s", path, diags.Error())
	}

	doc := boardsDoc{}
	for _, b := range root.Boards {
		entry := boardDoc{ID: b.ID, Name: b.Name, FQBN: b.FQBN}
		if b.Upload != nil {
			entry.Upload = uploadDoc{Command: b.Upload.Command, Tool: b.Upload.Tool, Speed: b.Upload.Speed}
		}
		if b.Pins != nil {
			entry.Pins = pinsDoc{Digital: b.Pins.Digital, PWM: b.Pins.PWM, Analog: b.Pins.Analog}
		}
		doc.Boards = append(doc.Boards, entry)
	}
	return fromDoc(ctx, path, &doc)
}

func fromDoc(ctx context.Context, path string, doc *boardsDoc) (map[string]*Profile, error) {
	logger := ctxlog.FromContext(ctx)

	profiles := make(map[string]*Profile, len(doc.Boards))
	for i, b := range doc.Boards {
		id := strings.TrimSpace(b.ID)
		if id == "" {
			return nil, fmt.Errorf("board profiles %s: board #%d has no id", path, i)
		}
		if _, dup := profiles[id]; dup {
			return nil, fmt.Errorf("board profiles %s: board %q is defined twice", path, id)
		}
		profile := &Profile{
			ID:   id,
			Name: b.Name,
			FQBN: b.FQBN,
			Upload: UploadSettings{
				Command: b.Upload.Command,
				Tool:    b.Upload.Tool,
				Speed:   b.Upload.Speed,
			},
			Pins: PinCapabilities{
				Digital: append([]int(nil), b.Pins.Digital...),
				PWM:     append([]int(nil), b.Pins.PWM...),
				Analog:  append([]string(nil), b.Pins.Analog...),
			},
		}
		if profile.Name == "" {
			profile.Name = id
		}
		if profile.FQBN == "" {
			profile.FQBN = id
		}
		if profile.Upload.Speed == 0 {
			profile.Upload.Speed = DefaultUploadSpeed
		}
		profiles[id] = profile
	}

	logger.Debug("Board profiles loaded.", "path", path, "count", len(profiles))
	return profiles, nil
}
