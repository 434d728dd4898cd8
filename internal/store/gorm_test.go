package store_test

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/watchair/watchair/internal/config"
	st "github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/pkg/migrations"
)

var _ = Describe("InitDB", func() {
	foreignKeys := func(dsn string) int {
		cfg := config.NewDefault()
		cfg.Database.Name = dsn

		db, err := st.InitDB(cfg)
		Expect(err).To(BeNil())
		DeferCleanup(func() {
			sqlDB, err := db.DB()
			Expect(err).To(BeNil())
			Expect(sqlDB.Close()).To(Succeed())
		})

		var enabled int
		Expect(db.Raw("PRAGMA foreign_keys;").Scan(&enabled).Error).To(Succeed())
		return enabled
	}

	It("turns sqlite foreign keys on when the name has no parameters", func() {
		Expect(foreignKeys(filepath.Join(GinkgoT().TempDir(), "watchair.db"))).To(Equal(1))
	})

	It("turns sqlite foreign keys on next to other parameters", func() {
		Expect(foreignKeys(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))).To(Equal(1))
	})

	It("keeps foreign keys off when the name disables them", func() {
		Expect(foreignKeys(fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=0", uuid.NewString()))).To(Equal(0))
	})

	It("drops the values of a replaced metric header", func() {
		cfg := config.NewDefault()
		cfg.Database.Name = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
		db, err := st.InitDB(cfg)
		Expect(err).To(BeNil())
		Expect(migrations.MigrateStore(db, "")).To(Succeed())
		s := st.NewStore(db)
		DeferCleanup(s.Close)

		ctx := context.TODO()
		domain, err := s.Domain().Create(ctx, model.Domain{Name: "ICSE"})
		Expect(err).To(BeNil())

		header := func(value float64) []model.MetricHeader {
			return []model.MetricHeader{{Title: "Committee participation", Values: []model.MetricValue{{Value: value, Label: "Ada"}}}}
		}
		Expect(s.Metric().Replace(ctx, domain.ID, nil, header(1))).To(Succeed())
		Expect(s.Metric().Replace(ctx, domain.ID, nil, header(2))).To(Succeed())

		var values int64
		Expect(db.Table("metric_values").Count(&values).Error).To(Succeed())
		Expect(values).To(Equal(int64(1)))
	})
})
