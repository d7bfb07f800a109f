package util

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// AudioInfo 存储发音音频信息
type AudioInfo struct {
	Duration float64 `json:"duration"` // 音频时长（秒）
	Codec    string  `json:"codec"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// GetAudioInfo 使用ffmpeg-go库获取音频元数据
func GetAudioInfo(audioPath string) (*AudioInfo, error) {
	fileInfo, err := os.Stat(audioPath)
	if err != nil {
		return nil, fmt.Errorf("音频文件不存在: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(audioPath)
	if err != nil {
		return nil, fmt.Errorf("获取音频信息失败: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			CodecName string `json:"codec_name"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("解析音频信息失败: %v", err)
	}

	var codec string
	for _, stream := range result.Streams {
		if stream.CodecType == "audio" {
			codec = stream.CodecName
			break
		}
	}

	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		duration = 0
	}

	size, err := strconv.ParseInt(result.Format.Size, 10, 64)
	if err != nil {
		size = fileInfo.Size()
	}

	format := "unknown"
	if len(result.Format.Format) > 0 {
		formatParts := strings.Split(result.Format.Format, ",")
		if len(formatParts) > 0 {
			format = formatParts[0]
		}
	}

	return &AudioInfo{
		Duration: duration,
		Codec:    codec,
		Format:   format,
		Size:     size,
	}, nil
}

// TranscodeAudioToMP3 将上传的发音音频统一转码为单声道 MP3
func TranscodeAudioToMP3(srcPath, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("创建音频目录失败: %v", err)
	}

	return ffmpeg.Input(srcPath).
		Output(dstPath, ffmpeg.KwArgs{
			"ac":  "1",   // 单声道
			"b:a": "64k", // 发音短音频，64k 足够
			"f":   "mp3",
		}).
		OverWriteOutput().
		Run()
}
