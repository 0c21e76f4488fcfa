package service

import (
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/money"
	"github.com/mmynk/settleup/pkg/api"
)

func groupToAPI(g *models.Group) *api.Group {
	members := make([]*api.Member, len(g.Members))
	for i, m := range g.Members {
		members[i] = memberToAPI(m)
	}
	return &api.Group{
		Id:          g.ID,
		Name:        g.Name,
		CreatedBy:   g.CreatedBy,
		Members:     members,
		TotalAmount: g.TotalAmount.String(),
		CreatedAt:   g.CreatedAt,
	}
}

func memberToAPI(m models.Member) *api.Member {
	return &api.Member{
		Id:   m.ID,
		Name: m.Name,
		Paid: m.Paid.String(),
		Owes: m.Owes.String(),
	}
}

func expenseToAPI(e *models.Expense) *api.Expense {
	return &api.Expense{
		Id:           e.ID,
		GroupId:      e.GroupID,
		Amount:       e.Amount.String(),
		Description:  e.Description,
		Category:     string(e.Category),
		PaidBy:       e.PaidBy,
		Participants: e.Participants,
		SplitType:    string(e.SplitType),
		Split:        splitToAPI(e.Split),
		CreatedAt:    e.CreatedAt,
	}
}

func splitToAPI(split map[string]money.Money) map[string]string {
	out := make(map[string]string, len(split))
	for id, share := range split {
		out[id] = share.String()
	}
	return out
}

func settlementToAPI(s calculator.Settlement) *api.Settlement {
	return &api.Settlement{
		FromMemberId: s.From,
		ToMemberId:   s.To,
		FromName:     s.FromName,
		ToName:       s.ToName,
		Amount:       s.Amount.String(),
	}
}

func paymentToAPI(p *models.Payment) *api.Payment {
	return &api.Payment{
		Id:           p.ID,
		GroupId:      p.GroupID,
		FromMemberId: p.From,
		ToMemberId:   p.To,
		Amount:       p.Amount.String(),
		Note:         p.Note,
		CreatedAt:    p.CreatedAt,
	}
}
