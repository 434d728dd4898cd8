package filestore_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/watchair/watchair/internal/config"
	"github.com/watchair/watchair/internal/filestore"
)

var _ = Describe("local file store", func() {
	var (
		store  filestore.FileStore
		folder string
	)

	BeforeEach(func() {
		folder = filepath.Join(GinkgoT().TempDir(), "uploads")
		var err error
		store, err = filestore.New(config.StorageConfig{Type: "local", UploadFolder: folder})
		Expect(err).To(BeNil())
		Expect(store.Type()).To(Equal("local"))
	})

	It("reads back a saved file", func() {
		Expect(store.Save(context.TODO(), "export.xlsx", strings.NewReader("content"))).To(Succeed())

		content, err := store.Read(context.TODO(), "export.xlsx")
		Expect(err).To(BeNil())
		Expect(string(content)).To(Equal("content"))
		Expect(filepath.Join(folder, "export.xlsx")).To(BeAnExistingFile())
	})

	It("refuses to overwrite a file", func() {
		Expect(store.Save(context.TODO(), "export.xlsx", strings.NewReader("first"))).To(Succeed())
		Expect(store.Save(context.TODO(), "export.xlsx", strings.NewReader("second"))).ToNot(Succeed())

		content, err := store.Read(context.TODO(), "export.xlsx")
		Expect(err).To(BeNil())
		Expect(string(content)).To(Equal("first"))
	})

	It("reports missing files", func() {
		_, err := store.Read(context.TODO(), "missing.xlsx")
		Expect(err).ToNot(BeNil())
		Expect(errors.Is(err, filestore.ErrFileNotFound)).To(BeTrue())
	})

	It("rejects names leaving the upload folder", func() {
		Expect(store.Save(context.TODO(), "../escape.xlsx", strings.NewReader("x"))).ToNot(Succeed())
		_, err := store.Read(context.TODO(), "../escape.xlsx")
		Expect(err).ToNot(BeNil())
	})

	It("fails on unknown storage types", func() {
		_, err := filestore.New(config.StorageConfig{Type: "ftp"})
		Expect(err).ToNot(BeNil())
	})
})
