/*
 * Copyright (C) 2019-Present Pivotal Software, Inc. All rights reserved.
 *
 * This program and the accompanying materials are made available under the terms
 * of the Apache License, Version 2.0 (the "License”); you may not use this file
 * except in compliance with the License. You may obtain a copy of the License at:
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed
 * under the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR
 * CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 */

package simulator

import (
	"strconv"
	"time"

	"k8s.io/client-go/tools/cache"
)

type StepPriorityQueue interface {
	EnqueueStep(step Step) (wasShifted bool, scheduledAt time.Time, err error)
	DequeueStep() (step Step, err error, closed bool)
	Close()
	IsClosed() bool
}

type stepPQ struct {
	heap *cache.Heap
}

func (spq *stepPQ) EnqueueStep(step Step) (wasShifted bool, scheduledAt time.Time, err error) {
	wasShifted = false
	i := 0 * time.Nanosecond
	for {
		key := occursAtToStr(step.OccursAt().Add(i))

		_, exists, err := spq.heap.GetByKey(key)
		if err != nil {
			return false, time.Unix(0, -1), err
		}

		if exists {
			i++
			wasShifted = true
		} else {
			break
		}
	}

	if wasShifted {
		shifted := &shiftedStep{Step: step, occursAt: step.OccursAt().Add(i)}
		return true, shifted.OccursAt(), spq.heap.Add(shifted)
	}

	return false, step.OccursAt(), spq.heap.Add(step)
}

// DequeueStep picks the next earliest step from the queue.
// It will block until there is a Step to retrieve
// Returns:
// 	step - the next Step, if available
// 	err - any errors
// 	closed - whether the underlying queue has "closed", meaning no further
// 	steps can be dequeued.
func (spq *stepPQ) DequeueStep() (step Step, err error, closed bool) {
	if spq.heap.IsClosed() && len(spq.heap.ListKeys()) == 0 {
		return nil, nil, true
	}

	n, err := spq.heap.Pop()
	if err != nil && spq.heap.IsClosed() {
		return nil, nil, true
	} else if err != nil {
		return nil, err, false
	}

	next := n.(Step)
	return next, nil, false
}

func (spq *stepPQ) Close() {
	spq.heap.Close()
}

func (spq *stepPQ) IsClosed() bool {
	return spq.heap.IsClosed()
}

func NewStepPriorityQueue() StepPriorityQueue {
	heap := cache.NewHeap(stepToKey, leftStepIsEarlier)

	return &stepPQ{
		heap: heap,
	}
}

func stepToKey(step interface{}) (key string, err error) {
	s := step.(Step)
	return occursAtToStr(s.OccursAt()), nil
}

func occursAtToStr(occursAt time.Time) string {
	return strconv.FormatInt(occursAt.UnixNano(), 10)
}

func leftStepIsEarlier(left interface{}, right interface{}) bool {
	l := left.(Step)
	r := right.(Step)

	return l.OccursAt().Before(r.OccursAt())
}
