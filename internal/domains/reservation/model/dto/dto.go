package dto

import (
	"errors"
	"strconv"
	"strings"

	"vipdining/internal/domains/reservation/model"
	"vipdining/shared/constant"
	"vipdining/shared/timezone"
)

const (
	MessageCreated = "reservation created"
)

var errPartySizeNotInteger = errors.New("partySize must be an integer")

// PartySize accepts a JSON integer or a string holding one. Anything else fails to decode.
type PartySize int

func (p *PartySize) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return errPartySizeNotInteger
		}

		raw = strings.TrimSpace(unquoted)
		if raw == "" {
			return nil
		}
	}

	size, err := strconv.Atoi(raw)
	if err != nil {
		return errPartySizeNotInteger
	}

	*p = PartySize(size)

	return nil
}

type CreateReservationRequest struct {
	CustomerName string    `json:"customerName" validate:"required,notblank"`
	Phone        string    `json:"phone" validate:"required,notblank"`
	DiningDate   string    `json:"diningDate" validate:"required,datetime=2006-01-02"`
	DiningTime   string    `json:"diningTime" validate:"required,datetime=15:04"`
	PartySize    PartySize `json:"partySize" validate:"required,gte=1" swaggertype:"integer"`
	TableType    string    `json:"tableType" validate:"required,notblank"`
	Occasion     string    `json:"occasion" validate:"max=255"`
}

func (c *CreateReservationRequest) ToModel() model.Reservation {
	return model.Reservation{
		CustomerName: c.CustomerName,
		Phone:        c.Phone,
		DiningDate:   c.DiningDate,
		DiningTime:   c.DiningTime,
		PartySize:    int(c.PartySize),
		TableType:    c.TableType,
		Occasion:     c.Occasion,
		CreatedAt:    timezone.Now().UTC(),
	}
}

type ReservationResponse struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	DiningDate   string `json:"dining_date"`
	DiningTime   string `json:"dining_time"`
	PartySize    int    `json:"party_size"`
	TableType    string `json:"table_type"`
	Occasion     string `json:"occasion"`
	CreatedAt    string `json:"created_at"`
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.CustomerName = model.CustomerName
	r.Phone = model.Phone
	r.DiningDate = model.DiningDate
	r.DiningTime = model.DiningTime
	r.PartySize = model.PartySize
	r.TableType = model.TableType
	r.Occasion = model.Occasion
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

// FromModels never returns nil, so an empty table encodes as [].
func FromModels(models []model.Reservation) []ReservationResponse {
	res := make([]ReservationResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

type CreateReservationResponse struct {
	Message string              `json:"message"`
	ID      int64               `json:"id"`
	Data    ReservationResponse `json:"data"`
}

func (r *CreateReservationResponse) FromModel(model model.Reservation) {
	r.Message = MessageCreated
	r.ID = model.ID
	r.Data.FromModel(model)
}
