package redraw_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRedraw(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Redraw Controller Suite")
}
