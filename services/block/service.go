package block

import (
	"context"

	"queuedesk/database/repository"
	"queuedesk/models"
	"queuedesk/utils"
)

// BlockService exposes the block calendar of queues and commerces.
type BlockService interface {
	GetQueueBlocks(ctx context.Context, queueID string) ([]models.Block, error)
	GetQueueBlocksByDay(ctx context.Context, queueID string) (map[int][]models.Block, error)
	GetCommerceBlocksByDay(ctx context.Context, commerceID string) (map[string]map[int][]models.Block, error)
	GetSpecificCalendarBlocks(ctx context.Context, commerceID, queueID string) (map[string][]models.Block, error)
}

type DefaultBlockService struct {
	Queues    repository.QueueRepository
	Commerces repository.CommerceRepository
}

func (s *DefaultBlockService) loadQueue(ctx context.Context, queueID string) (*models.Queue, *models.Commerce, error) {
	queue, err := s.Queues.GetByID(ctx, queueID)
	if err != nil {
		return nil, nil, utils.Wrap(utils.KindInternal, err, "failed to load queue %s", queueID)
	}
	if queue == nil {
		return nil, nil, utils.NotFound("queue %s not found", queueID)
	}
	commerce, err := s.Commerces.GetCommerce(ctx, queue.CommerceID)
	if err != nil {
		return nil, nil, utils.Wrap(utils.KindInternal, err, "failed to load commerce %s", queue.CommerceID)
	}
	return queue, commerce, nil
}

func (s *DefaultBlockService) GetQueueBlocks(ctx context.Context, queueID string) ([]models.Block, error) {
	queue, commerce, err := s.loadQueue(ctx, queueID)
	if err != nil {
		return nil, err
	}
	info := EffectiveServiceInfo(commerce, queue)
	if info == nil {
		return []models.Block{}, nil
	}
	return BuildBlocks(queue.BlockTime, HoursOf(info)), nil
}

func (s *DefaultBlockService) GetQueueBlocksByDay(ctx context.Context, queueID string) (map[int][]models.Block, error) {
	queue, commerce, err := s.loadQueue(ctx, queueID)
	if err != nil {
		return nil, err
	}
	return BlocksByDay(commerce, queue), nil
}

func (s *DefaultBlockService) GetCommerceBlocksByDay(ctx context.Context, commerceID string) (map[string]map[int][]models.Block, error) {
	commerce, err := s.Commerces.GetCommerce(ctx, commerceID)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to load commerce %s", commerceID)
	}
	if commerce == nil {
		return nil, utils.NotFound("commerce %s not found", commerceID)
	}
	queues, err := s.Queues.ListByCommerce(ctx, commerceID)
	if err != nil {
		return nil, utils.Wrap(utils.KindInternal, err, "failed to list queues of commerce %s", commerceID)
	}

	result := make(map[string]map[int][]models.Block, len(queues))
	for i := range queues {
		result[queues[i].ID] = BlocksByDay(commerce, &queues[i])
	}
	return result, nil
}

func (s *DefaultBlockService) GetSpecificCalendarBlocks(ctx context.Context, commerceID, queueID string) (map[string][]models.Block, error) {
	queue, commerce, err := s.loadQueue(ctx, queueID)
	if err != nil {
		return nil, err
	}
	if queue.CommerceID != commerceID {
		return map[string][]models.Block{}, nil
	}
	return BlocksBySpecificDate(commerce, queue), nil
}
