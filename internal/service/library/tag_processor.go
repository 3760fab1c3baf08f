package library

//go:generate $MOCKGEN -source=tag_processor.go -destination=mocks/tag_processor_mock.go

import (
	"context"
	"errors"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
	"github.com/oshokin/id3v2/v2"

	"github.com/lyra-player/lyra/internal/constants"
	"github.com/lyra-player/lyra/internal/logger"
)

// TagProcessor defines the interface for writing metadata tags to audio files.
type TagProcessor interface {
	WriteTags(ctx context.Context, req *WriteTagsRequest) error
}

// WriteTagsRequest contains parameters for writing metadata to audio files.
type WriteTagsRequest struct {
	// TrackPath is the file path of the audio track.
	TrackPath string
	// CoverPath is the file path of the cover art image, empty to skip embedding.
	CoverPath string
	// Title is the track title.
	Title string
	// Artist is the performing artist.
	Artist string
	// Album is the optional album title.
	Album string
	// LyricsLRC is the raw timed lyric document, empty when the track has none.
	LyricsLRC string
}

// TagProcessorImpl provides the default implementation of TagProcessor.
type TagProcessorImpl struct{}

// imageMetadata contains image data and its MIME type.
type imageMetadata struct {
	data     []byte
	mimeType string
}

// extractFLACCommentResult contains the result of extracting FLAC comment metadata.
type extractFLACCommentResult struct {
	// Comment is the FLAC Vorbis comment metadata block.
	Comment *flacvorbis.MetaDataBlockVorbisComment
	// Index is the index of the comment block in the FLAC file metadata (-1 if not found).
	Index int
}

// ErrEmptyTrackPath indicates that the track file path is empty.
var ErrEmptyTrackPath = errors.New("track path cannot be empty")

// NewTagProcessor creates a new TagProcessor instance.
func NewTagProcessor() TagProcessor {
	return new(TagProcessorImpl)
}

// WriteTags writes metadata to the audio file named in the request.
// The container is picked by file extension: FLAC gets Vorbis comments,
// everything else is treated as MP3 and gets ID3v2 frames.
func (tp *TagProcessorImpl) WriteTags(ctx context.Context, req *WriteTagsRequest) error {
	if req.TrackPath == "" {
		return ErrEmptyTrackPath
	}

	var image *imageMetadata

	if req.CoverPath != "" {
		imageData, err := os.ReadFile(filepath.Clean(req.CoverPath))
		if err != nil {
			return err
		}

		image = &imageMetadata{
			data:     imageData,
			mimeType: mime.TypeByExtension(filepath.Ext(req.CoverPath)),
		}
	}

	if strings.EqualFold(filepath.Ext(req.TrackPath), constants.ExtensionFLAC) {
		return tp.writeFLACTags(ctx, req, image)
	}

	return tp.writeMP3Tags(ctx, req, image)
}

func (tp *TagProcessorImpl) writeFLACTags(ctx context.Context, req *WriteTagsRequest, image *imageMetadata) error {
	f, err := flac.ParseFile(filepath.Clean(req.TrackPath))
	if err != nil {
		return err
	}

	commentResult, err := tp.extractFLACComment(req.TrackPath)
	if err != nil {
		return err
	}

	tag := commentResult.Comment
	if tag == nil {
		tag = flacvorbis.New()
	}

	if err = tp.addFLACTags(tag, req); err != nil {
		return err
	}

	tagMeta := tag.Marshal()
	if commentResult.Index >= 0 {
		f.Meta[commentResult.Index] = &tagMeta
	} else {
		f.Meta = append(f.Meta, &tagMeta)
	}

	tp.embedFLACCover(ctx, f, image)

	return f.Save(req.TrackPath)
}

func (tp *TagProcessorImpl) extractFLACComment(filename string) (*extractFLACCommentResult, error) {
	f, err := flac.ParseFile(filepath.Clean(filename))
	if err != nil {
		return nil, err
	}

	for idx, meta := range f.Meta {
		if meta.Type != flac.VorbisComment {
			continue
		}

		var comment *flacvorbis.MetaDataBlockVorbisComment

		comment, err = flacvorbis.ParseFromMetaDataBlock(*meta)
		if err == nil {
			return &extractFLACCommentResult{
				Comment: comment,
				Index:   idx,
			}, nil
		}
	}

	return &extractFLACCommentResult{
		Comment: nil,
		Index:   -1,
	}, nil
}

func (tp *TagProcessorImpl) addFLACTags(tag *flacvorbis.MetaDataBlockVorbisComment, req *WriteTagsRequest) error {
	flacTags := map[string]string{
		"TITLE":  req.Title,
		"ARTIST": req.Artist,
		"ALBUM":  req.Album,
		"LYRICS": strings.TrimSpace(req.LyricsLRC),
	}

	for k, v := range flacTags {
		if v == "" {
			continue
		}

		if err := tag.Add(k, v); err != nil {
			return err
		}
	}

	return nil
}

func (tp *TagProcessorImpl) embedFLACCover(ctx context.Context, f *flac.File, image *imageMetadata) {
	if image == nil {
		return
	}

	picture, err := flacpicture.NewFromImageData(flacpicture.PictureTypeFrontCover, "", image.data, image.mimeType)
	if err != nil {
		logger.Errorf(ctx, "Failed to embed image to FLAC: %v", err)

		return
	}

	pictureMeta := picture.Marshal()
	f.Meta = append(f.Meta, &pictureMeta)
}

func (tp *TagProcessorImpl) writeMP3Tags(ctx context.Context, req *WriteTagsRequest, image *imageMetadata) error {
	//nolint:exhaustruct // ParseFrames intentionally omitted when Parse=false (parsing disabled).
	tag, err := id3v2.Open(req.TrackPath, id3v2.Options{Parse: false})
	if err != nil {
		return err
	}

	defer tag.Close()

	tp.addMP3Tags(ctx, tag, req)

	if image != nil {
		//nolint:exhaustruct // Description field intentionally empty for cover images.
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    image.mimeType,
			PictureType: id3v2.PTFrontCover,
			Picture:     image.data,
		})
	}

	return tag.Save()
}

func (tp *TagProcessorImpl) addMP3Tags(ctx context.Context, tag *id3v2.Tag, req *WriteTagsRequest) {
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(req.Title)
	tag.SetArtist(req.Artist)
	tag.SetAlbum(req.Album)

	lyrics := strings.TrimSpace(req.LyricsLRC)
	if lyrics == "" {
		return
	}

	// Timed lyric documents become a synchronized lyrics frame; when parsing
	// fails the raw text still goes into an unsynchronised frame below.
	result, err := id3v2.ParseLRCFile(strings.NewReader(lyrics))
	if err == nil && len(result.SynchronizedTexts) > 0 {
		sylf := id3v2.SynchronisedLyricsFrame{
			Encoding: id3v2.EncodingUTF8,
			// Field is required, so we just use lingua franca.
			Language: id3v2.EnglishISO6392Code,
			// Use absolute timestamps.
			TimestampFormat: id3v2.SYLTAbsoluteMillisecondsTimestampFormat,
			// Mark as lyrics.
			ContentType: id3v2.SYLTLyricsContentType,
			// Descriptor for lyrics.
			ContentDescriptor: "Lyrics",
			// The actual synchronized lyrics.
			SynchronizedTexts: result.SynchronizedTexts,
		}

		tag.AddSynchronisedLyricsFrame(sylf)

		return
	}

	if err != nil {
		logger.Errorf(ctx, "Failed to parse timed lyrics: %v", err)
	}

	tag.AddUnsynchronisedLyricsFrame(
		//nolint:exhaustruct // ContentDescriptor not available in source data.
		id3v2.UnsynchronisedLyricsFrame{
			Encoding: id3v2.EncodingUTF8,
			Lyrics:   lyrics,
			// Field is required, so we just use lingua franca.
			Language: id3v2.EnglishISO6392Code,
		})
}
