package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscaldata/mts-tracker/internal/common"
	"github.com/fiscaldata/mts-tracker/internal/ocr"
)

type stubPageOCR struct {
	pages []int
	res   ocr.PageResult
	err   error
}

func (s *stubPageOCR) ReadPage(_ context.Context, _ string, pageIndex int) (ocr.PageResult, error) {
	s.pages = append(s.pages, pageIndex)
	return s.res, s.err
}

func TestFromOCR_ReadsConfiguredPage(t *testing.T) {
	reader := &stubPageOCR{res: ocr.PageResult{
		Text:    "Summary of Receipts and Outlays\nTotal Receipts 100",
		Regions: []ocr.Region{{Text: "Summary of Receipts and Outlays", Confidence: 91.2}},
	}}
	l := NewLocator(Config{PageIndex: 2}, reader, nil)

	src, ok, err := l.fromOCR(context.Background(), "mts0224.pdf", 10)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []int{2}, reader.pages)
	assert.Equal(t, MethodOCR, src.Method)
	assert.Equal(t, 2, src.Page)
	require.Len(t, src.Regions, 1)
	assert.Equal(t, 91.2, src.Regions[0].Confidence)
}

func TestFromOCR_OutOfRangePageNotGuessed(t *testing.T) {
	reader := &stubPageOCR{res: ocr.PageResult{Text: "Summary of Receipts and Outlays"}}
	l := NewLocator(Config{PageIndex: 50}, reader, nil)

	_, ok, err := l.fromOCR(context.Background(), "mts0224.pdf", 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, reader.pages)
}

func TestFromOCR_ReaderFailureIsExternal(t *testing.T) {
	reader := &stubPageOCR{err: errors.New("tesseract not installed")}
	l := NewLocator(Config{PageIndex: 0}, reader, nil)

	_, _, err := l.fromOCR(context.Background(), "mts0224.pdf", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrExternalService))
}

func TestFromOCR_NoMarkerIsNotAHit(t *testing.T) {
	reader := &stubPageOCR{res: ocr.PageResult{Text: "random page text"}}
	l := NewLocator(Config{PageIndex: 0}, reader, nil)

	_, ok, err := l.fromOCR(context.Background(), "mts0224.pdf", 3)
	require.NoError(t, err)
	assert.False(t, ok)
}
