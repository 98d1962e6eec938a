package model

// Accuracy is the fraction of matching labels.
func Accuracy(yTrue, yPred []int) float64 {
	if len(yTrue) == 0 {
		return 0
	}
	c := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			c++
		}
	}
	return float64(c) / float64(len(yTrue))
}

// ConfusionMatrix counts binary outcomes; rows are the true class, columns the prediction.
func ConfusionMatrix(yTrue, yPred []int) [2][2]int {
	var cm [2][2]int
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t < 0 || t > 1 || p < 0 || p > 1 {
			continue
		}
		cm[t][p]++
	}
	return cm
}

// TPR is the recall of class 1.
func TPR(cm [2][2]int) float64 {
	if d := cm[1][1] + cm[1][0]; d > 0 {
		return float64(cm[1][1]) / float64(d)
	}
	return 0
}

// TNR is the recall of class 0.
func TNR(cm [2][2]int) float64 {
	if d := cm[0][0] + cm[0][1]; d > 0 {
		return float64(cm[0][0]) / float64(d)
	}
	return 0
}

func BalancedAccuracy(cm [2][2]int) float64 { return (TPR(cm) + TNR(cm)) / 2 }

// PrecisionRecallF1 scores class 1 as the positive class.
func PrecisionRecallF1(yTrue []int, yPred []int) (prec, rec, f1 float64) {
	tp, fp, fn := 0, 0, 0
	for i := range yTrue {
		if yPred[i] == 1 && yTrue[i] == 1 {
			tp++
		}
		if yPred[i] == 1 && yTrue[i] == 0 {
			fp++
		}
		if yPred[i] == 0 && yTrue[i] == 1 {
			fn++
		}
	}
	if tp+fp > 0 {
		prec = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		rec = float64(tp) / float64(tp+fn)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return
}
