package v1_test

import (
	"encoding/json"
	"net/http"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/age-toolbox/internal/entities"
	"github.com/KirkDiggler/age-toolbox/internal/errors"
	v1 "github.com/KirkDiggler/age-toolbox/internal/handlers/api/v1"
	"github.com/KirkDiggler/age-toolbox/internal/orchestrators/stunt"
	"github.com/KirkDiggler/age-toolbox/internal/testutils"
)

func strp(v string) *string {
	return &v
}

func (s *HandlerTestSuite) TestListStunts() {
	catalog := testutils.SampleCatalog()

	s.Run("no filters", func() {
		s.mockStunt.EXPECT().
			ListStunts(gomock.Any(), &stunt.ListStuntsInput{}).
			Return(&stunt.ListStuntsOutput{Stunts: catalog, Total: len(catalog)}, nil)

		rec := s.do(http.MethodGet, "/api/stunts", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("7", rec.Header().Get(v1.HeaderTotalCount))

		var body []map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Len(body, 7)
		s.Equal("Skirmish", body[0]["name"])
		s.Equal(1.0, body[0]["cost"])
		s.Nil(body[0]["setting"])
		s.Equal("2-4", body[1]["cost"])
	})

	s.Run("filters are parsed from the query", func() {
		s.mockStunt.EXPECT().
			ListStunts(gomock.Any(), &stunt.ListStuntsInput{Criteria: stunt.Criteria{
				CostCeiling: testutils.Intp(3),
				Categories:  []string{"Combat", "Social", "Movement"},
				Settings:    []string{"Gritty"},
				Search:      "ir",
			}}).
			Return(&stunt.ListStuntsOutput{Stunts: catalog[:1], Total: len(catalog)}, nil)

		rec := s.do(http.MethodGet,
			"/api/stunts?cost_max=3&category=Combat&category=Social&category=Movement&setting=Gritty&search=ir", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.Equal("7", rec.Header().Get(v1.HeaderTotalCount))
	})

	s.Run("commas stay inside a value", func() {
		s.mockStunt.EXPECT().
			ListStunts(gomock.Any(), &stunt.ListStuntsInput{Criteria: stunt.Criteria{
				Categories: []string{"Swords, Shields"},
				Settings:   []string{"Cloak, Dagger"},
				Search:     "a, b",
			}}).
			Return(&stunt.ListStuntsOutput{Stunts: catalog[:0], Total: len(catalog)}, nil)

		rec := s.do(http.MethodGet, "/api/stunts?category=Swords%2C+Shields&setting=Cloak%2C+Dagger&search=a%2C+b", nil)
		s.Equal(http.StatusOK, rec.Code)
		s.JSONEq(`[]`, rec.Body.String())
	})

	s.Run("invalid cost_max", func() {
		rec := s.do(http.MethodGet, "/api/stunts?cost_max=lots", nil)
		s.Equal(http.StatusBadRequest, rec.Code)

		resp := s.decodeError(rec)
		s.Equal("invalid_argument", resp.Code)
		s.Contains(resp.Error, "cost_max")
		s.Equal(map[string]any{"cost_max": []any{"must be an integer"}}, resp.Details)
	})
}

func (s *HandlerTestSuite) TestGetFacets() {
	s.mockStunt.EXPECT().
		GetFacets(gomock.Any(), &stunt.GetFacetsInput{}).
		Return(&stunt.GetFacetsOutput{
			Categories: []string{"Combat", "Mental"},
			Settings:   []string{"Gritty"},
		}, nil)

	rec := s.do(http.MethodGet, "/api/stunts/facets", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"categories":["Combat","Mental"],"settings":["Gritty"]}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestGetStunt() {
	s.Run("found", func() {
		s.mockStunt.EXPECT().
			GetStunt(gomock.Any(), &stunt.GetStuntInput{ID: 4}).
			Return(&stunt.GetStuntOutput{
				Stunt: testutils.CreateTestStunt(4, "Dirty Fighting", "2", "Combat", testutils.Setting("Gritty")),
			}, nil)

		rec := s.do(http.MethodGet, "/api/stunts/4", nil)
		s.Equal(http.StatusOK, rec.Code)

		var got entities.Stunt
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(int64(4), got.ID)
		s.Equal(entities.Cost("2"), got.Cost)
		s.Equal("Gritty", got.SettingName())
	})

	s.Run("not found", func() {
		s.mockStunt.EXPECT().
			GetStunt(gomock.Any(), &stunt.GetStuntInput{ID: 99}).
			Return(nil, errors.Wrap(errors.NotFoundf("stunt with ID %d not found", 99), "failed to get stunt"))

		rec := s.do(http.MethodGet, "/api/stunts/99", nil)
		s.Equal(http.StatusNotFound, rec.Code)

		resp := s.decodeError(rec)
		s.Equal("not_found", resp.Code)
		s.Equal("stunt with ID 99 not found", resp.Error)
	})

	s.Run("invalid id", func() {
		for _, path := range []string{"/api/stunts/abc", "/api/stunts/0", "/api/stunts/-3"} {
			rec := s.do(http.MethodGet, path, nil)
			s.Equal(http.StatusBadRequest, rec.Code, path)
		}
	})
}

func (s *HandlerTestSuite) TestCreateStunt() {
	s.Run("created", func() {
		s.mockStunt.EXPECT().
			CreateStunt(gomock.Any(), &stunt.CreateStuntInput{
				Name:        "Taunt",
				Cost:        "2",
				Category:    "Social",
				Description: "Provoke a foe.",
				Setting:     testutils.Setting("Gritty"),
			}).
			Return(&stunt.CreateStuntOutput{
				Stunt: &entities.Stunt{
					ID:          8,
					Name:        "Taunt",
					Cost:        "2",
					Category:    "Social",
					Description: "Provoke a foe.",
					Setting:     testutils.Setting("Gritty"),
				},
			}, nil)

		rec := s.do(http.MethodPost, "/api/stunts", map[string]any{
			"name":        "Taunt",
			"cost":        2,
			"category":    "Social",
			"description": "Provoke a foe.",
			"setting":     "Gritty",
		})
		s.Equal(http.StatusCreated, rec.Code)

		var got entities.Stunt
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
		s.Equal(int64(8), got.ID)
	})

	s.Run("validation details are returned", func() {
		s.mockStunt.EXPECT().
			CreateStunt(gomock.Any(), &stunt.CreateStuntInput{Name: "Taunt"}).
			Return(nil, errors.NewValidationBuilder().
				RequiredField("cost").
				RequiredField("category").
				Build())

		rec := s.do(http.MethodPost, "/api/stunts", map[string]any{"name": "Taunt"})
		s.Equal(http.StatusBadRequest, rec.Code)

		resp := s.decodeError(rec)
		s.Equal("invalid_argument", resp.Code)
		s.Equal(map[string]any{
			"cost":     []any{"is required"},
			"category": []any{"is required"},
		}, resp.Details)
	})

	s.Run("malformed json", func() {
		rec := s.do(http.MethodPost, "/api/stunts", `{"name":`)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerTestSuite) TestReplaceStunt() {
	s.Run("absent setting becomes universal", func() {
		cost := entities.Cost("1-3")
		s.mockStunt.EXPECT().
			UpdateStunt(gomock.Any(), &stunt.UpdateStuntInput{
				ID:          2,
				Name:        strp("Disarm"),
				Cost:        &cost,
				Category:    strp("Combat"),
				Description: strp("Knock the weapon away."),
				Setting:     testutils.Setting(""),
			}).
			Return(&stunt.UpdateStuntOutput{
				Stunt: testutils.CreateTestStunt(2, "Disarm", "1-3", "Combat", nil),
			}, nil)

		rec := s.do(http.MethodPut, "/api/stunts/2", map[string]any{
			"name":        "Disarm",
			"cost":        "1-3",
			"category":    "Combat",
			"description": "Knock the weapon away.",
		})
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("missing fields surface as validation errors", func() {
		empty := entities.Cost("")
		s.mockStunt.EXPECT().
			UpdateStunt(gomock.Any(), &stunt.UpdateStuntInput{
				ID:          2,
				Name:        strp("Disarm"),
				Cost:        &empty,
				Category:    strp(""),
				Description: strp(""),
				Setting:     testutils.Setting(""),
			}).
			Return(nil, errors.NewValidationBuilder().
				RequiredField("cost").
				RequiredField("category").
				RequiredField("description").
				Build())

		rec := s.do(http.MethodPut, "/api/stunts/2", map[string]any{"name": "Disarm"})
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Len(s.decodeError(rec).Details, 3)
	})
}

func (s *HandlerTestSuite) TestPatchStunt() {
	s.Run("only present fields are sent", func() {
		s.mockStunt.EXPECT().
			UpdateStunt(gomock.Any(), &stunt.UpdateStuntInput{
				ID:      5,
				Setting: testutils.Setting("Universal"),
			}).
			Return(&stunt.UpdateStuntOutput{
				Stunt: testutils.CreateTestStunt(5, "Swing on a Rope", "3", "Movement", nil),
			}, nil)

		rec := s.do(http.MethodPatch, "/api/stunts/5", map[string]any{"setting": "Universal"})
		s.Equal(http.StatusOK, rec.Code)

		var body map[string]any
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Nil(body["setting"])
	})

	s.Run("unknown stunt", func() {
		s.mockStunt.EXPECT().
			UpdateStunt(gomock.Any(), gomock.Any()).
			Return(nil, errors.NotFound("stunt with ID 42 not found"))

		rec := s.do(http.MethodPatch, "/api/stunts/42", map[string]any{"name": "Renamed"})
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerTestSuite) TestDeleteStunt() {
	s.mockStunt.EXPECT().
		DeleteStunt(gomock.Any(), &stunt.DeleteStuntInput{ID: 3}).
		Return(&stunt.DeleteStuntOutput{}, nil)

	rec := s.do(http.MethodDelete, "/api/stunts/3", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"message":"Stunt deleted successfully"}`, rec.Body.String())

	s.mockStunt.EXPECT().
		DeleteStunt(gomock.Any(), &stunt.DeleteStuntInput{ID: 3}).
		Return(nil, errors.NotFound("stunt with ID 3 not found"))

	rec = s.do(http.MethodDelete, "/api/stunts/3", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}
