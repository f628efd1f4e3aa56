package request

import "treebox/internal/usecase/commands"

type RoomDetailPayload struct {
	Icon      string `json:"icon"`
	Accent    string `json:"accent"`
	BadgeBg   string `json:"badge_bg"`
	BadgeText string `json:"badge_text"`
	RowBg     string `json:"row_bg"`
	Border    string `json:"border"`
}

type CreateRoomRequest struct {
	Name      string            `json:"name" binding:"required,max=100"`
	ShortCode string            `json:"short_code" binding:"required,max=8"`
	Detail    RoomDetailPayload `json:"detail"`
}

func (r CreateRoomRequest) ToParams() commands.CreateRoomParams {
	return commands.CreateRoomParams{
		Name:      r.Name,
		ShortCode: r.ShortCode,
		Detail:    detailParams(r.Detail),
	}
}

type UpdateRoomRequest struct {
	Name      string            `json:"name" binding:"required,max=100"`
	ShortCode string            `json:"short_code" binding:"required,max=8"`
	Detail    RoomDetailPayload `json:"detail"`
}

func (r UpdateRoomRequest) ToParams() commands.UpdateRoomParams {
	return commands.UpdateRoomParams{
		Name:      r.Name,
		ShortCode: r.ShortCode,
		Detail:    detailParams(r.Detail),
	}
}

func detailParams(p RoomDetailPayload) commands.RoomDetailParams {
	return commands.RoomDetailParams{
		Icon:      p.Icon,
		Accent:    p.Accent,
		BadgeBg:   p.BadgeBg,
		BadgeText: p.BadgeText,
		RowBg:     p.RowBg,
		Border:    p.Border,
	}
}
