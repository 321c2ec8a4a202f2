package service_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/deppfellow/item-service/internal/config"
	"github.com/deppfellow/item-service/internal/logger"
	"github.com/deppfellow/item-service/internal/model"
	"github.com/deppfellow/item-service/internal/repository"
	"github.com/deppfellow/item-service/internal/server"
	"github.com/deppfellow/item-service/internal/service"
)

func newServer(t *testing.T) *server.Server {
	t.Helper()

	log := zerolog.Nop()
	s, err := server.New(config.Default(), &log, &logger.LoggerService{})
	if err != nil {
		t.Fatalf("server.New: %v", err)
	}
	return s
}

func TestItemService(t *testing.T) {
	Convey("Given an item service over the seed items", t, func() {
		s := newServer(t)
		repos := repository.NewRepositories(s)
		services, err := service.NewServices(s, repos)
		So(err, ShouldBeNil)

		svc := services.Items
		ctx := context.Background()

		Convey("Then the stored items gauge starts at the seed count", func() {
			So(gaugeValue(s, "items_api_items_stored"), ShouldEqual, 3)
		})

		Convey("When listing items", func() {
			Convey("Then the seed items are returned", func() {
				So(svc.ListItems(ctx), ShouldResemble, model.SeedItems())
			})
		})

		Convey("When getting a seeded item", func() {
			item, found, err := svc.GetItem(ctx, 3)

			Convey("Then it is found", func() {
				So(err, ShouldBeNil)
				So(found, ShouldBeTrue)
				So(item.Name, ShouldEqual, "Item 3")
			})
		})

		Convey("When getting a missing item", func() {
			item, found, err := svc.GetItem(ctx, 999)

			Convey("Then it is reported as absent without error", func() {
				So(err, ShouldBeNil)
				So(found, ShouldBeFalse)
				So(item, ShouldResemble, model.Item{})
			})
		})

		Convey("When creating an item", func() {
			created := svc.CreateItem(ctx, model.Item{ID: 4, Name: "Item 4", Description: "This is item 4"})

			Convey("Then it is echoed and stored last", func() {
				So(created.ID, ShouldEqual, 4)
				items := svc.ListItems(ctx)
				So(items[len(items)-1], ShouldResemble, created)
			})

			Convey("And the stored items gauge follows", func() {
				So(gaugeValue(s, "items_api_items_stored"), ShouldEqual, 4)
			})
		})
	})
}

// gaugeValue reads a single-series gauge from the server's registry.
func gaugeValue(s *server.Server, name string) float64 {
	families, err := s.Metrics.Registry().Gather()
	if err != nil {
		return -1
	}
	for _, family := range families {
		if family.GetName() == name && len(family.GetMetric()) == 1 {
			return family.GetMetric()[0].GetGauge().GetValue()
		}
	}
	return -1
}
