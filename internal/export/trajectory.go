// Package export writes episode trajectories to Parquet for offline analysis
// and training. One row is written per tick.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/vovakirdan/evasion/internal/episode"
)

// SchemaVersion is stored in each file's key/value metadata under "schema".
const SchemaVersion = "evasion_tick_v1"

// TickRow is the state after one tick together with the decisions that led
// to it. Walls are stored column-wise: wall i spans
// [WallL[i], WallR[i]] x [WallT[i], WallB[i]], in removal-index order.
type TickRow struct {
	Episode int32  `parquet:"episode"`
	Seed    int64  `parquet:"seed"`
	Hunter  string `parquet:"hunter,dict"`
	Prey    string `parquet:"prey,dict"`
	Tick    int32  `parquet:"tick"`
	Width   int32  `parquet:"width"`
	Height  int32  `parquet:"height"`

	HunterX  int32 `parquet:"hunter_x"`
	HunterY  int32 `parquet:"hunter_y"`
	HunterVX int32 `parquet:"hunter_vx"`
	HunterVY int32 `parquet:"hunter_vy"`
	PreyX    int32 `parquet:"prey_x"`
	PreyY    int32 `parquet:"prey_y"`

	WallTimer      int32   `parquet:"wall_timer"`
	WallsRemaining int32   `parquet:"walls_remaining"`
	WallL          []int32 `parquet:"wall_l"`
	WallR          []int32 `parquet:"wall_r"`
	WallT          []int32 `parquet:"wall_t"`
	WallB          []int32 `parquet:"wall_b"`

	Build     int32   `parquet:"build"` // 0 none, 1 horizontal, 2 vertical
	Remove    []int32 `parquet:"remove"`
	PreyMoveX int32   `parquet:"prey_move_x"`
	PreyMoveY int32   `parquet:"prey_move_y"`

	Distance float64 `parquet:"distance"`
	Captured bool    `parquet:"captured"`

	// Outcome is the episode's final result, copied onto every row:
	// 1 if the prey was eventually captured, 0 otherwise.
	Outcome float32 `parquet:"outcome"`
}

// RowFromTick flattens a tick record. Episode-level fields are left empty.
func RowFromTick(tr episode.TickRecord) TickRow {
	s := tr.State
	row := TickRow{
		Seed:           tr.Seed,
		Tick:           int32(s.Tick),
		Width:          int32(s.BoardW),
		Height:         int32(s.BoardH),
		HunterX:        int32(s.Hunter.Pos.X),
		HunterY:        int32(s.Hunter.Pos.Y),
		HunterVX:       int32(s.Hunter.Vel.X),
		HunterVY:       int32(s.Hunter.Vel.Y),
		PreyX:          int32(s.Prey.X),
		PreyY:          int32(s.Prey.Y),
		WallTimer:      int32(s.WallTimer),
		WallsRemaining: int32(s.WallsRemaining),
		Build:          int32(tr.Action.Build),
		PreyMoveX:      int32(tr.PreyMove.X),
		PreyMoveY:      int32(tr.PreyMove.Y),
		Distance:       s.Distance,
		Captured:       s.Captured,
	}

	n := len(s.Walls)
	row.WallL = make([]int32, n)
	row.WallR = make([]int32, n)
	row.WallT = make([]int32, n)
	row.WallB = make([]int32, n)
	for i, w := range s.Walls {
		row.WallL[i] = int32(w.Left())
		row.WallR[i] = int32(w.Right())
		row.WallT[i] = int32(w.Top())
		row.WallB[i] = int32(w.Bottom())
	}

	row.Remove = make([]int32, len(tr.Action.Remove))
	for i, idx := range tr.Action.Remove {
		row.Remove[i] = int32(idx)
	}
	return row
}

// TrajectoryWriter streams tick rows into outDir/tmp and moves the finished
// file into outDir on Finalize, so readers never observe a partial file.
// Ticks are held until their episode ends, then written with the episode's
// identity and outcome. It implements episode.Recorder and is not safe for
// concurrent use.
type TrajectoryWriter struct {
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[TickRow]

	pending  []TickRow
	rows     int
	episodes int
}

var _ episode.Recorder = (*TrajectoryWriter)(nil)

// NewTrajectoryWriter creates a writer for a new file in outDir.
func NewTrajectoryWriter(outDir string) (*TrajectoryWriter, error) {
	if outDir == "" {
		return nil, fmt.Errorf("export: outDir is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("export: create tmp dir: %w", err)
	}

	name := fmt.Sprintf("trajectories_%d.parquet", time.Now().UnixNano())
	tmpPath := filepath.Join(tmpDir, name)

	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("export: open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[TickRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", SchemaVersion)

	return &TrajectoryWriter{
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, name),
		file:    f,
		writer:  w,
	}, nil
}

// Record buffers one tick of the current episode.
func (w *TrajectoryWriter) Record(tr episode.TickRecord) error {
	if w.writer == nil {
		return errors.New("export: trajectory writer is closed")
	}
	w.pending = append(w.pending, RowFromTick(tr))
	return nil
}

// EndEpisode stamps the buffered ticks with the episode's identity and
// outcome and writes them out.
func (w *TrajectoryWriter) EndEpisode(res episode.Result) error {
	if w.writer == nil {
		return errors.New("export: trajectory writer is closed")
	}

	var outcome float32
	if res.Captured {
		outcome = 1
	}
	for i := range w.pending {
		w.pending[i].Episode = int32(res.Episode)
		w.pending[i].Hunter = res.Hunter
		w.pending[i].Prey = res.Prey
		w.pending[i].Outcome = outcome
	}

	if len(w.pending) > 0 {
		if _, err := w.writer.Write(w.pending); err != nil {
			return fmt.Errorf("export: write rows: %w", err)
		}
	}
	w.rows += len(w.pending)
	w.episodes++
	w.pending = w.pending[:0]
	return nil
}

// Finalize closes the file and moves it into place. Ticks of an unfinished
// episode are dropped. A file with no rows is removed and "" is returned.
func (w *TrajectoryWriter) Finalize() (outPath string, rows int, episodes int, err error) {
	if w.writer == nil && w.file == nil {
		return "", 0, 0, nil
	}

	rows, episodes = w.rows, w.episodes
	w.pending = nil

	var closeErr error
	if w.writer != nil {
		closeErr = w.writer.Close()
		w.writer = nil
	}
	var fileErr error
	if w.file != nil {
		_ = w.file.Sync()
		fileErr = w.file.Close()
		w.file = nil
	}
	if closeErr != nil {
		return "", 0, 0, fmt.Errorf("export: close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", 0, 0, fmt.Errorf("export: close parquet file: %w", fileErr)
	}

	if rows == 0 {
		_ = os.Remove(w.tmpPath)
		return "", 0, 0, nil
	}
	if err := os.Rename(w.tmpPath, w.outPath); err != nil {
		return "", 0, 0, fmt.Errorf("export: rename parquet: %w", err)
	}
	return w.outPath, rows, episodes, nil
}

// ReadTrajectory loads every row of a trajectory file, checking its schema tag.
func ReadTrajectory(path string) ([]TickRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("export: open parquet %s: %w", path, err)
	}
	if schema, ok := pf.Lookup("schema"); !ok || schema != SchemaVersion {
		return nil, fmt.Errorf("export: %s has schema %q, expected %q", path, schema, SchemaVersion)
	}

	reader := parquet.NewGenericReader[TickRow](pf)
	defer reader.Close()

	rows := make([]TickRow, reader.NumRows())
	n := 0
	for n < len(rows) {
		m, err := reader.Read(rows[n:])
		n += m
		if err == io.EOF || (err == nil && m == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("export: read rows: %w", err)
		}
	}
	return rows[:n], nil
}
