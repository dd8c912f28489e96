package export

// TFRecord object detection specific functionality.

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/golang/protobuf/proto"
	"github.com/ryszard/tfutils/go/example"
	"github.com/ryszard/tfutils/go/tfrecord"
	tensorflow "github.com/ryszard/tfutils/proto/tensorflow/core/example"
)

// LabelMap assigns numeric ids to categories in order, starting at 1. Id 0
// is reserved for the background class in common detection pipelines.
func LabelMap(categories []string) map[string]int32 {
	labelMap := make(map[string]int32, len(categories))
	for i, cat := range categories {
		labelMap[cat] = int32(i + 1)
	}
	return labelMap
}

// WriteLabelMap writes labelMap to path as JSON.
func WriteLabelMap(path string, labelMap map[string]int32) error {
	enc, err := json.MarshalIndent(labelMap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, enc, 0o644); err != nil {
		return fmt.Errorf("failed to write the label map %q: %v", path, err)
	}
	return nil
}

// toFeatureMap converts the exchange representation for a single file to the
// TFRecord feature layout used by the TensorFlow object detection API. Box
// coordinates are normalized against the image size.
func toFeatureMap(fileData AnnotatedFile, labelMap map[string]int32) (map[string]interface{}, error) {
	img, format, err := decodeImageConfig(fileData.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode the image metadata: %v", err)
	}

	imgData, err := readFile(fileData.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read the image: %v", err)
	}

	f := make(map[string]interface{}, 16)
	f["image/height"] = img.Height
	f["image/width"] = img.Width
	f["image/filename"] = fileData.FilePath
	f["image/source_id"] = string(fileData.ID)
	f["image/encoded"] = imgData
	f["image/format"] = format

	numLabels := len(fileData.Annotations)
	xmins := make([]float32, numLabels)
	ymins := make([]float32, numLabels)
	xmaxs := make([]float32, numLabels)
	ymaxs := make([]float32, numLabels)
	classes := make([]string, numLabels)
	classIDs := make([]int64, numLabels)
	for i, a := range fileData.Annotations {
		xmins[i] = float32(a.Coords[0]) / float32(img.Width)
		ymins[i] = float32(a.Coords[1]) / float32(img.Height)
		xmaxs[i] = float32(a.Coords[2]) / float32(img.Width)
		ymaxs[i] = float32(a.Coords[3]) / float32(img.Height)
		classes[i] = a.Label

		id, ok := labelMap[a.Label]
		if !ok {
			return nil, fmt.Errorf("category %q is not in the label map", a.Label)
		}
		classIDs[i] = int64(id)
	}
	f["image/object/bbox/xmin"] = xmins
	f["image/object/bbox/ymin"] = ymins
	f["image/object/bbox/xmax"] = xmaxs
	f["image/object/bbox/ymax"] = ymaxs
	f["image/object/class/text"] = classes
	f["image/object/class/label"] = classIDs

	return f, nil
}

// WriteTFRecord serialises files into one or more TFRecord shards under
// recordPath and writes the label map to labelMapPath as JSON. With more
// than one shard the files carry a "-00000-of-00005" style suffix.
func WriteTFRecord(recordPath, labelMapPath string, files []AnnotatedFile,
	labelMap map[string]int32, numShards int) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("conversion to TensorFlow Example failed: %v", e)
		}
	}()

	if numShards <= 0 {
		numShards = 1
	}

	fmtShardSuffix := func(idx int) string {
		return fmt.Sprintf("-%05d-of-%05d", idx, numShards)
	}

	var shardFile *os.File
	shardSize := int(math.Ceil(float64(len(files)) / float64(numShards)))
	shardIdx := -1

	// Convert and serialise one file at a time.
	for i, fileData := range files {
		if shardSize > 0 && i%shardSize == 0 {
			shardIdx++

			if shardFile != nil {
				_ = shardFile.Close()
				shardFile = nil
			}

			shardPath := recordPath
			if numShards > 1 {
				shardPath += fmtShardSuffix(shardIdx)
			}
			f, err := os.Create(shardPath)
			if err != nil {
				return fmt.Errorf("failed to create shard at %q: %v", shardPath, err)
			}
			shardFile = f
		}

		featureMap, err := toFeatureMap(fileData, labelMap)
		if err != nil {
			if shardFile != nil {
				_ = shardFile.Close()
			}
			return fmt.Errorf("failed to convert sample %s: %v", fileData.ID, err)
		}

		if err := writeTFRecordExample(shardFile, example.New(featureMap)); err != nil {
			if shardFile != nil {
				_ = shardFile.Close()
			}
			return fmt.Errorf("failed to write sample %s: %v", fileData.ID, err)
		}
	}

	if shardFile != nil {
		if err := shardFile.Close(); err != nil {
			return err
		}
	}

	return WriteLabelMap(labelMapPath, labelMap)
}

// writeTFRecordExample serialises the example and writes it as a TFRecord to w.
func writeTFRecordExample(w io.Writer, e *tensorflow.Example) error {
	enc, err := proto.Marshal(e)
	if err != nil {
		return err
	}
	return tfrecord.Write(w, enc)
}
