package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"secaware_backend/internal/model"
	"secaware_backend/internal/repository"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// MediaService handles module intro-video uploads: it probes the clip for
// duration/dimensions before pushing it to storage so the catalog can show
// accurate runtimes.
type MediaService struct {
	Storage    *StorageService
	ModuleRepo *repository.ModuleRepository
}

func NewMediaService(storage *StorageService, moduleRepo *repository.ModuleRepository) *MediaService {
	return &MediaService{Storage: storage, ModuleRepo: moduleRepo}
}

type VideoInfo struct {
	Duration float64 `json:"duration"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Format   string  `json:"format"`
	Size     int64   `json:"size"`
}

// ProbeVideo reads a clip's metadata with ffprobe.
func ProbeVideo(videoPath string) (*VideoInfo, error) {
	fileInfo, err := os.Stat(videoPath)
	if err != nil {
		return nil, fmt.Errorf("video file missing: %v", err)
	}

	jsonOutput, err := ffmpeg.Probe(videoPath)
	if err != nil {
		return nil, fmt.Errorf("probe failed: %v", err)
	}

	var result struct {
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
		} `json:"streams"`
		Format struct {
			Duration string `json:"duration"`
			Size     string `json:"size"`
			Format   string `json:"format_name"`
		} `json:"format"`
	}

	if err := json.Unmarshal([]byte(jsonOutput), &result); err != nil {
		return nil, fmt.Errorf("parse probe output: %v", err)
	}

	var width, height int
	for _, stream := range result.Streams {
		if stream.CodecType == "video" {
			width = stream.Width
			height = stream.Height
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

	return &VideoInfo{
		Duration: duration,
		Width:    width,
		Height:   height,
		Format:   format,
		Size:     size,
	}, nil
}

// UploadIntroVideo stages the multipart file, probes it and records the URL
// plus duration on the catalog module.
func (s *MediaService) UploadIntroVideo(ctx context.Context, moduleID string, file *multipart.FileHeader, save func(*multipart.FileHeader, string) error) (*model.TrainingModule, *VideoInfo, error) {
	module, err := s.ModuleRepo.FindByModuleID(moduleID)
	if err != nil {
		return nil, nil, err
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("intro-%s%s", moduleID, filepath.Ext(file.Filename)))
	if err := save(file, tmpPath); err != nil {
		return nil, nil, err
	}
	defer os.Remove(tmpPath)

	info, err := ProbeVideo(tmpPath)
	if err != nil {
		return nil, nil, err
	}

	objectName := fmt.Sprintf("modules/%s/intro%s", moduleID, filepath.Ext(file.Filename))
	url, err := s.Storage.UploadFile(ctx, objectName, tmpPath, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, nil, err
	}

	if err := s.ModuleRepo.UpdateIntroVideo(moduleID, url, info.Duration); err != nil {
		return nil, nil, err
	}

	module.IntroVideoURL = url
	module.IntroVideoSecs = info.Duration
	return module, info, nil
}
