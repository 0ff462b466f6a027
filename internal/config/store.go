package config

import (
	"sync"

	"github.com/CrazyPigHead/t-reader/internal/reader"
)

// FileStore persists the reading cursor into a profile file. With an empty
// path it keeps everything in memory.
type FileStore struct {
	mu   sync.Mutex
	path string
	cfg  *Config
}

func NewFileStore(path string, cfg *Config) *FileStore {
	return &FileStore{path: path, cfg: cfg}
}

// reload picks up edits made to the file since the last read.
func (s *FileStore) reload() error {
	if s.path == "" {
		return nil
	}

	c, err := loadYAML(s.path)
	if err != nil {
		return err
	}

	s.cfg.ChapterURL = c.ChapterURL
	s.cfg.CurrChapterNumber = c.CurrChapterNumber
	s.cfg.CurrPageNumber = c.CurrPageNumber
	s.cfg.PageSize = c.PageSize
	s.cfg.LineBreak = c.LineBreak
	s.cfg.WideScript = c.WideScript
	s.cfg.AutoDetectScript = c.AutoDetectScript

	return nil
}

func (s *FileStore) Settings() (reader.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reload(); err != nil {
		return reader.Settings{}, err
	}

	return reader.Settings{
		ChapterURL:       s.cfg.ChapterURL,
		Chapter:          s.cfg.CurrChapterNumber,
		Page:             s.cfg.CurrPageNumber,
		PageSize:         s.cfg.PageSize,
		LineBreak:        s.cfg.LineBreak,
		WideScript:       s.cfg.WideScript,
		AutoDetectScript: s.cfg.AutoDetectScript,
	}, nil
}

func (s *FileStore) SaveChapter(n int) error {
	return s.save(func(c *Config) { c.CurrChapterNumber = n })
}

func (s *FileStore) SavePage(n int) error {
	return s.save(func(c *Config) { c.CurrPageNumber = n })
}

func (s *FileStore) save(apply func(*Config)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply(s.cfg)
	if s.path == "" {
		return nil
	}

	onDisk, err := loadYAML(s.path)
	if err != nil {
		return err
	}
	apply(onDisk)

	return SaveYAML(onDisk, s.path)
}
