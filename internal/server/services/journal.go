package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/saketh1999/consistency-cal-sub000/internal/common"
	"github.com/saketh1999/consistency-cal-sub000/internal/dbx"
	"github.com/saketh1999/consistency-cal-sub000/internal/journal"
	"github.com/saketh1999/consistency-cal-sub000/internal/logging"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/dailies"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/images"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/repomanager"
	"github.com/saketh1999/consistency-cal-sub000/internal/server/repositories/videos"
)

// JournalService reads and writes daily entries together with their images,
// videos and tags.
type JournalService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       BlobStore
	logger      logging.Logger
}

func NewJournalService(db *sql.DB, m repomanager.RepositoryManager, blobs BlobStore, logger logging.Logger) *JournalService {
	return &JournalService{db: db, repomanager: m, blobs: blobs, logger: logger}
}

// GetDay assembles the entry for date with images, videos and the day's
// materialized todos. A date with neither an entry nor dated tasks yields
// common.ErrorNotFound.
func (s *JournalService) GetDay(ctx context.Context, userID string, date journal.Date) (*journal.DailyEntry, error) {
	e, err := s.repomanager.Dailies(s.db).Get(ctx, userID, date)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, err
	}

	todos, dated, err := materialize(ctx, s.repomanager.Tasks(s.db), userID, date)
	if err != nil {
		return nil, err
	}

	if e == nil {
		if dated == 0 {
			return nil, common.ErrorNotFound
		}
		e = &journal.DailyEntry{UserID: userID, Date: date}
	} else {
		imgs, err := s.repomanager.Images(s.db).List(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		vids, err := s.repomanager.Videos(s.db).List(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		e.Data.ImageURLs = imageURLs(imgs)
		e.Data.VideoURLs = videoURLs(vids)
	}
	e.Data.Todos = todos
	return e, nil
}

// SaveDay replaces notes, important events, featured image and the image and
// video lists of a date, creating the entry on first save. Todos are ignored.
// Objects of images dropped from the list are removed from blob storage after
// the transaction commits.
func (s *JournalService) SaveDay(ctx context.Context, userID string, date journal.Date, data journal.DailyData) (*journal.DailyEntry, error) {
	data = journal.Normalize(data)

	var removed []string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		e := &journal.DailyEntry{UserID: userID, Date: date, Data: data}
		if err := s.repomanager.Dailies(tx).Upsert(ctx, e); err != nil {
			return err
		}

		keys, err := syncImages(ctx, s.repomanager.Images(tx), e.ID, data.ImageURLs)
		if err != nil {
			return err
		}
		removed = keys

		return syncVideos(ctx, s.repomanager.Videos(tx), e.ID, data.VideoURLs)
	})
	if err != nil {
		return nil, fmt.Errorf("save day %s: %w", date, err)
	}

	s.deleteBlobs(ctx, removed)
	return s.GetDay(ctx, userID, date)
}

func (s *JournalService) ListDays(ctx context.Context, userID string, from, to journal.Date) ([]dailies.Summary, error) {
	if to < from {
		return nil, fmt.Errorf("range %s..%s is reversed: %w", from, to, common.ErrValidation)
	}
	return s.repomanager.Dailies(s.db).ListRange(ctx, userID, from, to)
}

// AddImage appends url to the date's images and returns the image id and the
// resulting featured image. Adding a URL already present is a no-op.
func (s *JournalService) AddImage(ctx context.Context, userID string, date journal.Date, url, storageKey string) (string, string, error) {
	if strings.TrimSpace(url) == "" {
		return "", "", fmt.Errorf("image url is empty: %w", common.ErrValidation)
	}

	var id, featured string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		entryID, err := s.repomanager.Dailies(tx).Ensure(ctx, userID, date)
		if err != nil {
			return err
		}
		e, err := s.repomanager.Dailies(tx).Get(ctx, userID, date)
		if err != nil {
			return err
		}

		list, err := s.repomanager.Images(tx).List(ctx, entryID)
		if err != nil {
			return err
		}
		featured = e.Data.FeaturedImageURL
		for _, img := range list {
			if img.URL == url {
				id = img.ID
				return nil
			}
		}

		img := &journal.Image{EntryID: entryID, URL: url, StorageKey: storageKey, Position: len(list)}
		if err := s.repomanager.Images(tx).Add(ctx, img); err != nil {
			return err
		}
		id = img.ID

		if next := journal.FeaturedAfterAdd(featured, url); next != featured {
			featured = next
			return s.repomanager.Dailies(tx).SetFeatured(ctx, entryID, featured)
		}
		return nil
	})
	if err != nil {
		return "", "", fmt.Errorf("add image: %w", err)
	}
	return id, featured, nil
}

// DeleteImage removes url from the date and returns the featured image after
// the removal. Deleting an image that is already gone succeeds.
func (s *JournalService) DeleteImage(ctx context.Context, userID string, date journal.Date, url string) (string, error) {
	var featured, key string
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		e, err := s.repomanager.Dailies(tx).Get(ctx, userID, date)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil
			}
			return err
		}
		featured = e.Data.FeaturedImageURL

		key, err = s.repomanager.Images(tx).Delete(ctx, e.ID, url)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		remaining, err := s.repomanager.Images(tx).List(ctx, e.ID)
		if err != nil {
			return err
		}
		next := journal.FeaturedAfterDelete(imageURLs(remaining), featured, url)
		if next == featured {
			return nil
		}
		featured = next
		return s.repomanager.Dailies(tx).SetFeatured(ctx, e.ID, featured)
	})
	if err != nil {
		return "", fmt.Errorf("delete image: %w", err)
	}

	s.deleteBlobs(ctx, []string{key})
	return featured, nil
}

// AddVideo appends url to the date's videos and attaches the named tags,
// creating tags the user does not have yet.
func (s *JournalService) AddVideo(ctx context.Context, userID string, date journal.Date, url string, tagNames []string) (*journal.Video, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("video url is empty: %w", common.ErrValidation)
	}

	var v *journal.Video
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		entryID, err := s.repomanager.Dailies(tx).Ensure(ctx, userID, date)
		if err != nil {
			return err
		}
		list, err := s.repomanager.Videos(tx).List(ctx, entryID)
		if err != nil {
			return err
		}
		pos := slices.Index(videoURLs(list), url)
		if pos < 0 {
			pos = len(list)
		}

		v = &journal.Video{EntryID: entryID, URL: url}
		if err := s.repomanager.Videos(tx).Add(ctx, v, pos); err != nil {
			return err
		}

		for _, name := range cleanTags(tagNames) {
			tag, err := s.repomanager.Tags(tx).Ensure(ctx, userID, name)
			if err != nil {
				return err
			}
			if err := s.repomanager.Tags(tx).Attach(ctx, v.ID, tag.ID); err != nil {
				return err
			}
			v.Tags = append(v.Tags, tag)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("add video: %w", err)
	}
	return v, nil
}

// DeleteVideo removes url from the date. Missing videos are not an error.
func (s *JournalService) DeleteVideo(ctx context.Context, userID string, date journal.Date, url string) error {
	e, err := s.repomanager.Dailies(s.db).Get(ctx, userID, date)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		return err
	}
	if err := s.repomanager.Videos(s.db).Delete(ctx, e.ID, url); err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}

func (s *JournalService) ListTags(ctx context.Context, userID string) ([]string, error) {
	tags, err := s.repomanager.Tags(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return journal.TagNames(tags), nil
}

func (s *JournalService) deleteBlobs(ctx context.Context, keys []string) {
	for _, k := range keys {
		if k == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, k); err != nil {
			s.logger.Warn(ctx, "blob delete failed", "key", k, "error", err)
		}
	}
}

// syncImages makes the stored images of entryID equal urls, in order, and
// returns the storage keys of the images it removed.
func syncImages(ctx context.Context, repo images.Repository, entryID string, urls []string) ([]string, error) {
	existing, err := repo.List(ctx, entryID)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, img := range existing {
		if slices.Contains(urls, img.URL) {
			continue
		}
		key, err := repo.Delete(ctx, entryID, img.URL)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		removed = append(removed, key)
	}

	for i, u := range dedupe(urls) {
		if err := repo.Add(ctx, &journal.Image{EntryID: entryID, URL: u, Position: i}); err != nil {
			return nil, err
		}
	}
	return removed, nil
}

func syncVideos(ctx context.Context, repo videos.Repository, entryID string, urls []string) error {
	existing, err := repo.List(ctx, entryID)
	if err != nil {
		return err
	}
	for _, v := range existing {
		if slices.Contains(urls, v.URL) {
			continue
		}
		if err := repo.Delete(ctx, entryID, v.URL); err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}
	}
	for i, u := range dedupe(urls) {
		if err := repo.Add(ctx, &journal.Video{EntryID: entryID, URL: u}, i); err != nil {
			return err
		}
	}
	return nil
}

func imageURLs(list []journal.Image) []string {
	out := make([]string, 0, len(list))
	for _, img := range list {
		out = append(out, img.URL)
	}
	return out
}

func videoURLs(list []journal.Video) []string {
	out := make([]string, 0, len(list))
	for _, v := range list {
		out = append(out, v.URL)
	}
	return out
}

func dedupe(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" && !slices.Contains(out, u) {
			out = append(out, u)
		}
	}
	return out
}

func cleanTags(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}
