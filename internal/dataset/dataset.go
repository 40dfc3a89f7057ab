// Package dataset decodes YAML fixtures into the scene's input records.
package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDataset []byte

// ErrEmptyID is returned when a token record has no identifier.
var ErrEmptyID = errors.New("dataset: token id is empty")

// Dataset is the decoded input for one scene.
type Dataset struct {
	Ranked   []entity.RankedInput
	Hub      *entity.HubData
	Explorer *entity.ExplorerInput
}

type document struct {
	Hub      *hubRecord      `yaml:"hub"`
	Explorer *explorerRecord `yaml:"explorer"`
	Tokens   []tokenRecord   `yaml:"tokens"`
}

type hubRecord struct {
	Symbol          string  `yaml:"symbol"`
	Price           float64 `yaml:"price"`
	DexVolume       float64 `yaml:"dex_volume"`
	ActiveAddresses int64   `yaml:"active_addresses"`
	NFTVolume       float64 `yaml:"nft_volume"`
}

type explorerRecord struct {
	Address string         `yaml:"address"`
	Payload map[string]any `yaml:"payload"`
}

type tokenRecord struct {
	ID        string         `yaml:"id"`
	Ticker    string         `yaml:"ticker"`
	MarketCap float64        `yaml:"market_cap"`
	Holders   int            `yaml:"holders"`
	Metadata  map[string]any `yaml:"metadata"`
}

// Default returns the built-in dataset.
func Default() (*Dataset, error) {
	return Decode(bytes.NewReader(defaultDataset))
}

// Load reads a dataset from path. An empty path selects the built-in dataset.
func Load(path string) (*Dataset, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Decode parses one YAML document. Unknown keys are rejected. Token order is kept,
// since it is the rank order of the layout.
func Decode(r io.Reader) (*Dataset, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	ds := &Dataset{Ranked: make([]entity.RankedInput, 0, len(doc.Tokens))}
	for i, t := range doc.Tokens {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, fmt.Errorf("token %d: %w", i, ErrEmptyID)
		}
		ticker := t.Ticker
		if ticker == "" {
			ticker = id
		}
		ds.Ranked = append(ds.Ranked, entity.RankedInput{
			ID:         id,
			Ticker:     ticker,
			SizeMetric: t.MarketCap,
			Holders:    t.Holders,
			Metadata:   t.Metadata,
		})
	}

	if doc.Hub != nil {
		ds.Hub = &entity.HubData{
			Symbol:          doc.Hub.Symbol,
			Price:           doc.Hub.Price,
			Volume:          doc.Hub.DexVolume,
			ActiveCount:     doc.Hub.ActiveAddresses,
			SecondaryVolume: doc.Hub.NFTVolume,
		}
	}

	if doc.Explorer != nil {
		in := &entity.ExplorerInput{Address: doc.Explorer.Address}
		if doc.Explorer.Payload != nil {
			in.Payload = doc.Explorer.Payload
		}
		ds.Explorer = in
	}
	return ds, nil
}

// WithExplorerAddress returns a copy of the dataset whose explorer uses address.
// An explorer is created when the dataset has none; its payload is the address
// itself so the input is valid.
func (d *Dataset) WithExplorerAddress(address string) *Dataset {
	if address == "" {
		return d
	}
	out := *d
	in := &entity.ExplorerInput{Address: address, Payload: address}
	if d.Explorer != nil && d.Explorer.Payload != nil {
		in.Payload = d.Explorer.Payload
	}
	out.Explorer = in
	return &out
}
