package importer

import (
	"fmt"
	"io"

	"github.com/ashwinvk/spendlens/internal/importer/statement"
	"github.com/ashwinvk/spendlens/internal/ledger"
)

type Service struct {
	statementImporter Importer
}

func NewService() *Service {
	return &Service{
		statementImporter: statement.New(),
	}
}

func (s *Service) Import(source Source, r io.Reader) ([]ledger.CreateParams, error) {
	switch source {
	case SourceGeneric, SourceHDFC:
		// Both formats are auto-detected by column profile.
		return s.statementImporter.Parse(r)
	default:
		return nil, fmt.Errorf("unknown statement source: %s", source)
	}
}
