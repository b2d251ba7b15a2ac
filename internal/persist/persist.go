// Package persist converts the layer stack to and from plain records, the
// shape the save/restore collaborator exchanges.
package persist

import (
	"encoding/json"
	"fmt"
	"io"

	"XSheetInk/internal/layer"
	"XSheetInk/internal/logging"
	"XSheetInk/internal/object"
)

// LayerState is one layer as saved.
type LayerState struct {
	LayerName string          `json:"layerName"`
	Visible   bool            `json:"visible"`
	Objects   []object.Record `json:"objects"`
}

// State is every layer in index order.
type State []LayerState

// Report summarizes an Import.
type Report struct {
	Layers   int
	Imported int
	Skipped  int
}

// Export snapshots every layer, hidden ones included.
func Export(s *layer.Store) State {
	out := make(State, 0, s.Len())
	for _, l := range s.Layers() {
		ls := LayerState{
			LayerName: l.Name,
			Visible:   l.Visible,
			Objects:   make([]object.Record, 0, len(l.Objects)),
		}
		for _, o := range l.Objects {
			ls.Objects = append(ls.Objects, o.Serialize())
		}
		out = append(out, ls)
	}
	return out
}

// Import loads st into s. Entry i replaces layer i when it exists and is
// appended as a new layer otherwise; layers beyond len(st) are left alone.
// Records that cannot be rebuilt are skipped one by one. Every layer is
// repainted afterwards.
func Import(s *layer.Store, st State) Report {
	log := logging.For("persist")
	s.ClearSelection()

	var rep Report
	for i, ls := range st {
		l := s.Layer(i)
		if l == nil {
			l = s.Layer(s.AddLayer(ls.LayerName))
		}
		l.Name = ls.LayerName
		l.Visible = ls.Visible
		l.Objects = make([]object.Object, 0, len(ls.Objects))
		for j, rec := range ls.Objects {
			obj, err := object.Deserialize(rec)
			if err != nil {
				rep.Skipped++
				log.Warn("skipping record", "layer", i, "index", j, "err", err)
				continue
			}
			l.Objects = append(l.Objects, obj)
			rep.Imported++
		}
		rep.Layers++
	}
	s.RedrawAll()
	log.Info("state imported", "layers", rep.Layers, "objects", rep.Imported, "skipped", rep.Skipped)
	return rep
}

// Encode writes st as indented JSON.
func Encode(w io.Writer, st State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Decode reads a State written by Encode.
func Decode(r io.Reader) (State, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return st, nil
}
