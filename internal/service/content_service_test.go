package service

import (
	"context"
	"errors"
	"testing"

	"github.com/leadersite/internal/media"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	host := &mockHost{}
	svc := NewEventService(setupServiceTestDB(t), host, testFolder)
	ctx := context.Background()

	_, err := svc.Create(ctx, EventInput{Title: strPtr("Town hall")})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	host.expectUpload("data:image/png;base64,poster", testFolder+"/events", "poster")
	event, err := svc.Create(ctx, EventInput{
		Title:       strPtr(" Town hall "),
		Description: strPtr("Open discussion"),
		Location:    strPtr("Ward 7"),
		Date:        strPtr("2026-11-02"),
		IsFeatured:  boolPtr(true),
		Image:       strPtr("data:image/png;base64,poster"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Town hall", event.Title)
	assert.Equal(t, testCDNBase+"poster", event.Image)
	assert.True(t, event.IsFeatured)

	updated, err := svc.Update(ctx, event.ID, EventInput{Time: strPtr("10:00"), IsFeatured: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.Time)
	assert.False(t, updated.IsFeatured)
	assert.Equal(t, "Ward 7", updated.Location)
	host.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	_, err = svc.Update(ctx, event.ID, EventInput{Title: strPtr("")})
	assert.ErrorAs(t, err, &validationErr)

	host.On("Delete", mock.Anything, mock.Anything).Return(errors.New("remote unavailable"))
	require.NoError(t, svc.Delete(ctx, event.ID))
	assert.Equal(t, []string{"poster"}, host.deletedIDs())

	_, err = svc.Get(ctx, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventUpdateReplacesImage(t *testing.T) {
	host := &mockHost{}
	svc := NewEventService(setupServiceTestDB(t), host, testFolder)
	ctx := context.Background()

	host.expectUpload("data:image/png;base64,old", testFolder+"/events", "old")
	event, err := svc.Create(ctx, EventInput{
		Title: strPtr("Rally"), Description: strPtr("Main square"), Location: strPtr("Centre"),
		Date: strPtr("2026-12-01"), Image: strPtr("data:image/png;base64,old"),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, event.ID, EventInput{Image: strPtr(testCDNBase + "old")})
	require.NoError(t, err)
	assert.Equal(t, testCDNBase+"old", updated.Image)
	host.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	host.expectUpload("data:image/png;base64,new", testFolder+"/events", "new")
	host.On("Delete", mock.Anything, "old").Return(nil).Once()
	updated, err = svc.Update(ctx, event.ID, EventInput{Image: strPtr("data:image/png;base64,new")})
	require.NoError(t, err)
	assert.Equal(t, testCDNBase+"new", updated.Image)
	assert.Equal(t, []string{"old"}, host.deletedIDs())

	host.On("Upload", mock.Anything, "data:image/png;base64,broken", testFolder+"/events").
		Return(media.Asset{}, errors.New("rejected"))
	_, err = svc.Update(ctx, event.ID, EventInput{Image: strPtr("data:image/png;base64,broken")})
	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)

	stored, err := svc.Get(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, testCDNBase+"new", stored.Image)
}

func TestEventListNewestFirst(t *testing.T) {
	host := &mockHost{}
	svc := NewEventService(setupServiceTestDB(t), host, testFolder)
	ctx := context.Background()

	var ids []uint
	for _, name := range []string{"first", "second"} {
		host.expectUpload("data:"+name, testFolder+"/events", name)
		event, err := svc.Create(ctx, EventInput{
			Title: strPtr(name), Description: strPtr("d"), Location: strPtr("l"),
			Date: strPtr("2026-01-01"), Image: strPtr("data:" + name),
		})
		require.NoError(t, err)
		ids = append(ids, event.ID)
	}

	events, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ids[1], events[0].ID)
	assert.Equal(t, ids[0], events[1].ID)
}

func TestNewsRendersMarkdown(t *testing.T) {
	host := &mockHost{}
	svc := NewNewsService(setupServiceTestDB(t), host, testFolder)
	ctx := context.Background()

	_, err := svc.Create(ctx, NewsInput{Title: strPtr("Budget"), Image: strPtr("data:x")})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	host.expectUpload("data:cover", testFolder+"/news", "cover")
	article, err := svc.Create(ctx, NewsInput{
		Title:   strPtr("Budget"),
		Content: strPtr("**Roads** first <script>alert(1)</script>"),
		Source:  strPtr("Daily"),
		Image:   strPtr("data:cover"),
	})
	require.NoError(t, err)
	assert.Contains(t, article.ContentHTML, "<strong>Roads</strong>")
	assert.NotContains(t, article.ContentHTML, "<script>")

	fetched, err := svc.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.ContentHTML, fetched.ContentHTML)

	updated, err := svc.Update(ctx, article.ID, NewsInput{Summary: strPtr("Short")})
	require.NoError(t, err)
	assert.Equal(t, "Short", updated.Summary)
	assert.Equal(t, "Daily", updated.Source)

	host.On("Delete", mock.Anything, "cover").Return(nil).Once()
	require.NoError(t, svc.Delete(ctx, article.ID))
	assert.ErrorIs(t, svc.Delete(ctx, article.ID), ErrNewsNotFound)
}

func TestInterviewCanonicalizesYoutubeLinks(t *testing.T) {
	host := &mockHost{}
	svc := NewInterviewService(setupServiceTestDB(t), host, testFolder)
	ctx := context.Background()

	host.expectUpload("data:thumb", testFolder+"/interviews", "thumb")
	interview, err := svc.Create(ctx, InterviewInput{
		Title:    strPtr("Morning show"),
		Channel:  strPtr("News 24"),
		VideoURL: strPtr("https://youtu.be/dQw4w9WgXcQ"),
		Image:    strPtr("data:thumb"),
	})
	require.NoError(t, err)
	assert.Equal(t, canonicalRick, interview.VideoURL)
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", interview.EmbedURL)

	updated, err := svc.Update(ctx, interview.ID, InterviewInput{VideoURL: strPtr(" https://news24.example/clip/7 ")})
	require.NoError(t, err)
	assert.Equal(t, "https://news24.example/clip/7", updated.VideoURL)
	assert.Empty(t, updated.EmbedURL)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = svc.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrInterviewNotFound)
}

func TestSahityaSlugs(t *testing.T) {
	svc := NewSahityaService(setupServiceTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, SahityaInput{Title: strPtr("Poem")})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)

	first, err := svc.Create(ctx, SahityaInput{Title: strPtr("Voice of the River"), Content: strPtr("_flows_")})
	require.NoError(t, err)
	assert.Equal(t, "voice-of-the-river", first.Slug)
	assert.Contains(t, first.ContentHTML, "<em>flows</em>")

	second, err := svc.Create(ctx, SahityaInput{Title: strPtr("Voice of the River"), Content: strPtr("again")})
	require.NoError(t, err)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Regexp(t, `^voice-of-the-river-[0-9a-f]{8}$`, second.Slug)

	bySlug, err := svc.GetBySlug(ctx, "voice-of-the-river")
	require.NoError(t, err)
	assert.Equal(t, first.ID, bySlug.ID)

	kept, err := svc.Update(ctx, first.ID, SahityaInput{Author: strPtr("Anon")})
	require.NoError(t, err)
	assert.Equal(t, "voice-of-the-river", kept.Slug)

	renamed, err := svc.Update(ctx, first.ID, SahityaInput{Title: strPtr("Song of the Hills")})
	require.NoError(t, err)
	assert.Equal(t, "song-of-the-hills", renamed.Slug)

	_, err = svc.GetBySlug(ctx, "voice-of-the-river")
	assert.ErrorIs(t, err, ErrSahityaNotFound)

	require.NoError(t, svc.Delete(ctx, second.ID))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
