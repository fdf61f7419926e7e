package models

import (
	"time"

	"github.com/m04kA/BMP-BookingService/internal/domain"
)

// Request модели

// CreateBlockRequest запрос на создание заблокированного интервала
type CreateBlockRequest struct {
	UserID     int64     `json:"userId"`
	BusinessID int64     `json:"businessId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Reason     string    `json:"reason,omitempty"`
}

// ToDomainBlock конвертирует request в domain модель
func (r *CreateBlockRequest) ToDomainBlock() *domain.Block {
	return &domain.Block{
		BusinessID: r.BusinessID,
		StartsAt:   r.StartsAt,
		EndsAt:     r.EndsAt,
		Reason:     r.Reason,
		CreatedBy:  r.UserID,
	}
}

// ListBlocksRequest запрос на получение блоков бизнеса
type ListBlocksRequest struct {
	UserID     int64      `json:"userId"`
	BusinessID int64      `json:"businessId"`
	From       *time.Time `json:"from,omitempty"` // Только блоки, заканчивающиеся после этого момента
}

// Response модели

// BlockResponse ответ с данными заблокированного интервала
type BlockResponse struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"businessId"`
	StartsAt   time.Time `json:"startsAt"`
	EndsAt     time.Time `json:"endsAt"`
	Reason     string    `json:"reason,omitempty"`
	CreatedBy  int64     `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком блоков
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.Block) *BlockResponse {
	if b == nil {
		return nil
	}

	return &BlockResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		StartsAt:   b.StartsAt,
		EndsAt:     b.EndsAt,
		Reason:     b.Reason,
		CreatedBy:  b.CreatedBy,
		CreatedAt:  b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.Block) *BlockListResponse {
	if blocks == nil {
		return &BlockListResponse{
			Blocks: []BlockResponse{},
		}
	}

	resp := &BlockListResponse{
		Blocks: make([]BlockResponse, len(blocks)),
	}

	for i, block := range blocks {
		if blockResp := FromDomainBlock(block); blockResp != nil {
			resp.Blocks[i] = *blockResp
		}
	}

	return resp
}
