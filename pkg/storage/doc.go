// Package storage provides short-lived file storage for uploaded files.
//
// Two backends implement the [Storage] interface: [LocalStorage] keeps files
// in a directory on the local filesystem and [S3Storage] keeps them in an
// S3-compatible bucket. Both are meant for files that live only as long as a
// request needs them: write, read back, delete.
//
// # Basic Usage
//
//	store, err := storage.NewLocal("uploads")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	keys := storage.NewKeyGenerator()
//	info, err := store.Put(ctx, part, -1,
//		storage.WithKey(keys.Generate(part.FileName())),
//		storage.WithContentType(part.Header.Get("Content-Type")),
//		storage.WithValidation(
//			storage.MaxSize(25<<20),
//			storage.PDFOnly(),
//		),
//	)
//
// # Validation
//
// Validation rules run against the declared content type before anything is
// written. Size is enforced while streaming: a file that grows past its
// [MaxSize] limit aborts the write and the partial file is removed.
//
// Validation failures are returned as *FileValidationError:
//
//	var verr *storage.FileValidationError
//	if errors.As(err, &verr) {
//		log.Println(verr.Code, verr.Message)
//	}
//
// # Keys
//
// [KeyGenerator] produces collision-resistant keys of the form
// "{unix-millis}-{8 hex chars}{ext}". The clock and random source are
// injectable so keys are reproducible in tests.
package storage
