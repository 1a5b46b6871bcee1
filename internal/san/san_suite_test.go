package san_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSan(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SAN Model Suite")
}
