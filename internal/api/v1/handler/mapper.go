package handler

import (
	"seocontrol/internal/api/v1/dto"
	"seocontrol/internal/model"
)

func toSiteResponse(s *model.Site) dto.SiteResponseDTO {
	return dto.SiteResponseDTO{
		ID:          s.ID,
		Name:        s.Name,
		URL:         s.URL,
		Description: s.Description,
		UserID:      s.UserID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toSiteListItem(s *model.SiteOverview) dto.SiteListItemDTO {
	audits := make([]dto.AuditDTO, 0, len(s.Audits))
	for _, a := range s.Audits {
		audits = append(audits, dto.AuditDTO{
			ID:              a.ID,
			SiteID:          a.SiteID,
			UserID:          a.UserID,
			Status:          string(a.Status),
			Score:           a.Score,
			Issues:          a.Issues,
			Recommendations: a.Recommendations,
			CreatedAt:       a.CreatedAt,
			UpdatedAt:       a.UpdatedAt,
		})
	}
	keywords := make([]dto.KeywordResponseDTO, 0, len(s.Keywords))
	for i := range s.Keywords {
		keywords = append(keywords, toKeywordResponse(&s.Keywords[i]))
	}
	return dto.SiteListItemDTO{
		SiteResponseDTO: toSiteResponse(&s.Site),
		Audits:          audits,
		Keywords:        keywords,
		AuditCount:      dto.Counted(len(audits)),
		KeywordCount:    dto.Counted(len(keywords)),
	}
}

func toKeywordResponse(k *model.Keyword) dto.KeywordResponseDTO {
	return dto.KeywordResponseDTO{
		ID:         k.ID,
		Keyword:    k.Keyword,
		SiteID:     k.SiteID,
		UserID:     k.UserID,
		Position:   k.Position,
		Volume:     k.Volume,
		Difficulty: k.Difficulty,
		CreatedAt:  k.CreatedAt,
		UpdatedAt:  k.UpdatedAt,
	}
}

func toReportResponse(r *model.Report) dto.ReportResponseDTO {
	return dto.ReportResponseDTO{
		ID:        r.ID,
		Title:     r.Title,
		Type:      string(r.Type),
		SiteID:    r.SiteID,
		UserID:    r.UserID,
		Status:    string(r.Status),
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toProfileResponse(p *model.Profile) dto.ProfileResponseDTO {
	return dto.ProfileResponseDTO{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      string(p.Role),
		Plan:      string(p.Plan),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toAdminUser(u *model.UserSummary) dto.AdminUserDTO {
	return dto.AdminUserDTO{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Role:         string(u.Role),
		Plan:         string(u.Plan),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		SiteCount:    dto.Counted(u.SiteCount),
		AuditCount:   dto.Counted(u.AuditCount),
		KeywordCount: dto.Counted(u.KeywordCount),
	}
}
