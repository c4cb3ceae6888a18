package describe

import (
	"context"
	"fmt"

	"fitted/internal/domain"
	"fitted/internal/imageprep"
	"fitted/internal/infra"
	"fitted/internal/providers/vision"
)

// TextGenerator is the slice of the vision backend this service needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, images []vision.Image) (string, error)
}

// Service wraps the vision backend behind the two description operations:
// classify an outfit image and apply a single chat edit to an existing
// description. Neither retries; retry policy belongs to the caller.
type Service struct {
	backend  TextGenerator
	resolver *imageprep.Resolver
	logger   *infra.Logger
}

func NewService(backend TextGenerator, resolver *imageprep.Resolver, logger *infra.Logger) *Service {
	return &Service{backend: backend, resolver: resolver, logger: logger}
}

// Classify fetches and normalizes the outfit image and extracts a
// structured description of every visible garment.
func (s *Service) Classify(ctx context.Context, outfitRef string) (domain.OutfitDescription, error) {
	img, err := s.prepare(ctx, outfitRef)
	if err != nil {
		return domain.OutfitDescription{}, fmt.Errorf("%w: %v", domain.ErrClassification, err)
	}
	reply, err := s.backend.GenerateText(ctx, classifyPrompt, []vision.Image{img})
	if err != nil {
		return domain.OutfitDescription{}, fmt.Errorf("%w: %v", domain.ErrClassification, err)
	}
	desc, err := ParseDescription(reply)
	if err != nil {
		return domain.OutfitDescription{}, fmt.Errorf("%w: %v", domain.ErrClassification, err)
	}
	s.logger.Debug().Str("style", desc.Style).Int("colors", len(desc.Colors)).Msg("describe: classified outfit")
	return desc, nil
}

// Update applies one requested change to the current description, keeping
// everything else untouched. A new garment image, when given, is attached
// so the backend can fold it into the outfit.
func (s *Service) Update(ctx context.Context, current, instruction, newImageRef string) (domain.OutfitDescription, error) {
	var images []vision.Image
	if newImageRef != "" {
		img, err := s.prepare(ctx, newImageRef)
		if err != nil {
			return domain.OutfitDescription{}, fmt.Errorf("%w: %v", domain.ErrDescriptionUpdate, err)
		}
		images = append(images, img)
	}

	prompt := buildUpdatePrompt(current, instruction, newImageRef != "")
	reply, err := s.backend.GenerateText(ctx, prompt, images)
	if err != nil {
		return domain.OutfitDescription{}, fmt.Errorf("%w: %v", domain.ErrDescriptionUpdate, err)
	}
	desc, err := ParseDescription(reply)
	if err != nil {
		return domain.OutfitDescription{}, fmt.Errorf("%w: %v", domain.ErrDescriptionUpdate, err)
	}
	s.logger.Debug().Bool("new_image", newImageRef != "").Msg("describe: updated description")
	return desc, nil
}

func (s *Service) prepare(ctx context.Context, ref string) (vision.Image, error) {
	raw, err := s.resolver.Resolve(ctx, ref)
	if err != nil {
		return vision.Image{}, err
	}
	prepared, err := imageprep.Normalize(raw)
	if err != nil {
		return vision.Image{}, err
	}
	return vision.Image{MIMEType: "image/jpeg", Data: prepared.Data}, nil
}
