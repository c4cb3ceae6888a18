package tryon

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"fitted/internal/describe"
	"fitted/internal/domain"
	"fitted/internal/imageprep"
	"fitted/internal/infra"
	"fitted/internal/providers/rembg"
	"fitted/internal/providers/synth"
	"fitted/internal/storage"
)

// Describer is the slice of the description service the orchestrator needs.
type Describer interface {
	Classify(ctx context.Context, outfitRef string) (domain.OutfitDescription, error)
	Update(ctx context.Context, current, instruction, newImageRef string) (domain.OutfitDescription, error)
}

// Service orchestrates the try-on pipeline: describe the outfit, prepare
// the reference images, compose the prompt, synthesize, persist the result
// and record the session.
type Service struct {
	describer Describer
	generator synth.Generator
	remover   rembg.Remover
	resolver  *imageprep.Resolver
	store     *Store
	results   *storage.FileStore
	baseURL   string
	logger    *infra.Logger
}

type ServiceOptions struct {
	Describer Describer
	Generator synth.Generator
	// Remover is optional. When nil, synthesized images are stored as-is.
	Remover  rembg.Remover
	Resolver *imageprep.Resolver
	Store    *Store
	Results  *storage.FileStore
	BaseURL  string
	Logger   *infra.Logger
}

func NewService(opts ServiceOptions) *Service {
	return &Service{
		describer: opts.Describer,
		generator: opts.Generator,
		remover:   opts.Remover,
		resolver:  opts.Resolver,
		store:     opts.Store,
		results:   opts.Results,
		baseURL:   opts.BaseURL,
		logger:    opts.Logger,
	}
}

// Start runs the initial try-on: classify the outfit image, render the user
// wearing it and open a session around the result.
func (s *Service) Start(ctx context.Context, outfitRef, userPhotoRef string) (*domain.Session, error) {
	description, err := s.describer.Classify(ctx, outfitRef)
	if err != nil {
		return nil, err
	}

	var (
		user   imageprep.Prepared
		outfit imageprep.Prepared
		aspect string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, aspect, err = s.prepareUserPhoto(gctx, userPhotoRef)
		return err
	})
	g.Go(func() error {
		var err error
		outfit, err = s.prepareImage(gctx, outfitRef)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	comp := ComposeInitial(description.Description, user, outfit)
	resultRef, err := s.synthesize(ctx, comp, aspect)
	if err != nil {
		return nil, err
	}

	sess := s.store.Create(userPhotoRef, outfitRef, description, resultRef)
	s.logger.Info().
		Str("session_id", sess.ID).
		Str("mode", comp.Mode.String()).
		Str("aspect_ratio", aspect).
		Msg("tryon: session started")
	return sess, nil
}

// Refine applies one chat instruction to an existing session. The whole
// cycle is serialized per session; the session only advances when
// synthesis succeeds.
func (s *Service) Refine(ctx context.Context, sessionID, message, newImageRef string) (*domain.Session, error) {
	refineMu, ok := s.store.RefineLock(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	refineMu.Lock()
	defer refineMu.Unlock()

	sess, ok := s.store.Lookup(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}

	updated, err := s.describer.Update(ctx, sess.CurrentDescription.Description, message, newImageRef)
	if err != nil {
		return nil, err
	}
	if changed := describe.Changes(sess.CurrentDescription, updated); len(changed) > 1 {
		s.logger.Warn().
			Str("session_id", sessionID).
			Strs("fields", changed).
			Msg("tryon: description drifted beyond the requested change")
	}

	mode, err := SelectMode(newImageRef != "", sess.CurrentResultRef != "")
	if err != nil {
		return nil, err
	}

	var (
		user     imageprep.Prepared
		previous imageprep.Prepared
		newItem  imageprep.Prepared
		aspect   string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, aspect, err = s.prepareUserPhoto(gctx, sess.UserPhotoRef)
		return err
	})
	g.Go(func() error {
		var err error
		previous, err = s.prepareImage(gctx, sess.CurrentResultRef)
		return err
	})
	if mode == ModeLayering {
		g.Go(func() error {
			var err error
			newItem, err = s.prepareImage(gctx, newImageRef)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var comp Composition
	switch mode {
	case ModeLayering:
		comp = ComposeLayering(updated.Description, user, previous, newItem)
	default:
		comp = ComposeTextModify(updated.Description, user, previous)
	}

	resultRef, err := s.synthesize(ctx, comp, aspect)
	if err != nil {
		return nil, err
	}

	sess, err = s.store.Mutate(sessionID, updated, resultRef,
		domain.ChatTurn{Role: domain.RoleUser, Content: message},
		domain.ChatTurn{Role: domain.RoleAssistant, Content: updated.Description},
	)
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("session_id", sessionID).
		Str("mode", comp.Mode.String()).
		Msg("tryon: session refined")
	return sess, nil
}

// prepareUserPhoto normalizes the reference photo and picks the output
// aspect ratio from its original dimensions.
func (s *Service) prepareUserPhoto(ctx context.Context, ref string) (imageprep.Prepared, string, error) {
	raw, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		return imageprep.Prepared{}, "", err
	}
	width, height, err := imageprep.Dimensions(raw)
	if err != nil {
		return imageprep.Prepared{}, "", err
	}
	prepared, err := imageprep.Normalize(raw)
	if err != nil {
		return imageprep.Prepared{}, "", err
	}
	return prepared, imageprep.PickAspectRatio(width, height), nil
}

func (s *Service) prepareImage(ctx context.Context, ref string) (imageprep.Prepared, error) {
	raw, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		return imageprep.Prepared{}, err
	}
	return imageprep.Normalize(raw)
}

// synthesize renders the composition, optionally strips the background and
// stores the result, returning its public URL.
func (s *Service) synthesize(ctx context.Context, comp Composition, aspect string) (string, error) {
	img, err := s.generator.Generate(ctx, synth.Request{
		Prompt:      comp.Prompt,
		Images:      comp.Images,
		AspectRatio: aspect,
	})
	if err != nil {
		return "", err
	}
	if s.remover != nil {
		cleaned, err := s.remover.Remove(ctx, img)
		if err != nil {
			return "", err
		}
		img = cleaned
	}

	key := fmt.Sprintf("tryon_%s.png", shortID(8))
	stored, err := s.results.Write(ctx, key, img)
	if err != nil {
		return "", fmt.Errorf("%w: store result: %v", domain.ErrSynthesis, err)
	}
	return s.baseURL + "/results/" + stored, nil
}
