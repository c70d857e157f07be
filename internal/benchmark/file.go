package benchmark

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// FileProvider reads the competition's static data bundle: whitespace-
// separated text files with one record per sub-function. The 2013
// bundle shares one shift file and one matrix file per dimension; the
// 2014 bundle splits them per function and adds shuffle files. Shuffle
// entries are 1-based on disk and rebased to 0-based here.
type FileProvider struct {
	dir    string
	logger *zap.Logger
}

// NewFileProvider creates a provider rooted at dir. A nil logger
// disables load logging.
func NewFileProvider(dir string, logger *zap.Logger) *FileProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileProvider{
		dir:    dir,
		logger: logger.Named("file_provider"),
	}
}

// Tables loads the tables for one problem from the bundle.
func (fp *FileProvider) Tables(req TableRequest) (*Tables, error) {
	const op = "FileProvider.Tables"

	var shiftFile, matFile, shuffleFile string
	switch req.Suite {
	case "cec2013":
		shiftFile = "shift_data.txt"
		matFile = fmt.Sprintf("M_D%d.txt", req.Dim)
	case "cec2014":
		shiftFile = fmt.Sprintf("shift_data_%d.txt", req.Func)
		matFile = fmt.Sprintf("M_%d_D%d.txt", req.Func, req.Dim)
		shuffleFile = fmt.Sprintf("shuffle_data_%d_D%d.txt", req.Func, req.Dim)
	default:
		return nil, NewInvalidArgument("unknown suite %q", req.Suite).WithOperation(op)
	}

	t := &Tables{}
	var err error

	t.Shift, err = fp.readShiftRows(filepath.Join(fp.dir, shiftFile), req.Shifts, req.Dim)
	if err != nil {
		return nil, WrapError(err, "reading shift table").WithOperation(op)
	}

	t.Rotation, err = fp.readFloats(filepath.Join(fp.dir, matFile), req.Matrices*req.Dim*req.Dim)
	if err != nil {
		return nil, WrapError(err, "reading rotation table").WithOperation(op)
	}

	if req.ShuffleBlocks > 0 {
		if shuffleFile == "" {
			return nil, NewInvalidArgument("suite %q has no shuffle data", req.Suite).WithOperation(op)
		}
		t.Shuffle, err = fp.readShuffle(filepath.Join(fp.dir, shuffleFile), req.ShuffleBlocks*req.Dim)
		if err != nil {
			return nil, WrapError(err, "reading shuffle table").WithOperation(op)
		}
	}

	fp.logger.Debug("loaded problem tables",
		zap.String("suite", req.Suite),
		zap.Int("func", req.Func),
		zap.Int("dim", req.Dim),
		zap.Int("shift_values", len(t.Shift)),
		zap.Int("rotation_values", len(t.Rotation)),
		zap.Int("shuffle_values", len(t.Shuffle)),
	)
	return t, nil
}

// readShiftRows reads the first dim values of each of the first rows
// lines. The bundle's shift files are 100 columns wide regardless of
// dimension; the tail of each line is ignored, matching the reference
// loader.
func (fp *FileProvider) readShiftRows(path string, rows, dim int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make([]float64, 0, rows*dim)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	row := 0
	for row < rows && sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < dim {
			return nil, NewErrorf("%s row %d has %d values, need %d", filepath.Base(path), row, len(fields), dim)
		}
		for _, fv := range fields[:dim] {
			v, err := strconv.ParseFloat(fv, 64)
			if err != nil {
				return nil, WrapErrorf(err, "%s row %d", filepath.Base(path), row)
			}
			out = append(out, v)
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if row < rows {
		return nil, NewErrorf("%s has %d rows, need %d", filepath.Base(path), row, rows)
	}
	return out, nil
}

// readFloats reads count whitespace-separated doubles.
func (fp *FileProvider) readFloats(path string, count int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make([]float64, 0, count)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	for len(out) < count && sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, WrapErrorf(err, "%s value %d", filepath.Base(path), len(out))
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) < count {
		return nil, NewErrorf("%s has %d values, need %d", filepath.Base(path), len(out), count)
	}
	return out, nil
}

// readShuffle reads count 1-based indices and rebases them to 0-based.
func (fp *FileProvider) readShuffle(path string, count int) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out := make([]int, 0, count)
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)
	for len(out) < count && sc.Scan() {
		v, err := strconv.Atoi(strings.TrimSuffix(sc.Text(), ".0"))
		if err != nil {
			return nil, WrapErrorf(err, "%s value %d", filepath.Base(path), len(out))
		}
		out = append(out, v-1)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) < count {
		return nil, NewErrorf("%s has %d values, need %d", filepath.Base(path), len(out), count)
	}
	return out, nil
}
