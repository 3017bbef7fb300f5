package service

import "time"

func (s *DashboardService) SetClock(now func() time.Time) { s.now = now }

func (s *TeamService) SetClock(now func() time.Time) { s.now = now }

func (s *TeamService) SetTokenSource(newToken func() (string, error)) { s.newToken = newToken }
