/*
go-depthfuse post processes the output of a depth estimation (heatmap) model
and fuses it with the results of an object detection model run on the same
image.

The raw confidence tensor produced by the depth model is normalized into a 2D
grid, rendered as a grayscale overlay and aggregated per detected bounding box
to give each object a closeness score.  The mean of the binarized grid is
compared against a fixed threshold to decide when an alert should be raised.

The models themselves are not part of this package, they are plugged in
through the ObjectDetector and DepthEstimator interfaces, optionally pooled
to run several model instances concurrently.  Recorded model outputs can be
replayed from files with the replay subpackage.  See the postprocess, render
and session subpackages and the example code in the example subdirectory.
*/
package depthfuse
