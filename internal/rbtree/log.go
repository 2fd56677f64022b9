package rbtree

import "github.com/sirupsen/logrus"

var log = logrus.WithField("component", "rbtree")
